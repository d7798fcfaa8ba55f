package migrate

import (
	"github.com/steveyegge/graphmig/internal/colors"
	"github.com/steveyegge/graphmig/internal/failure"
	"github.com/steveyegge/graphmig/internal/legacy"
	"github.com/steveyegge/graphmig/internal/schema"
)

func (m *Migrator) metrics(infos *legacy.Ordered[legacy.MetricInfo]) ([]schema.Metric, error) {
	var migrated []schema.Metric
	for name, info := range infos.All() {
		err := m.try(schema.NamespaceMetrics, name, func() error {
			metric, err := m.metric(name, info)
			if err != nil {
				return err
			}
			migrated = append(migrated, metric)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return migrated, nil
}

func (m *Migrator) metric(name string, info legacy.MetricInfo) (schema.Metric, error) {
	color, err := colors.Parse(info.Color)
	if err != nil {
		return schema.Metric{}, failure.Schema("metric info", "color", err)
	}
	return schema.Metric{
		Name:  name,
		Title: schema.Title(info.Title),
		Unit:  m.Units.Parse(info.Unit),
		Color: color,
	}, nil
}
