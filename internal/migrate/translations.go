package migrate

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/steveyegge/graphmig/internal/failure"
	"github.com/steveyegge/graphmig/internal/legacy"
	"github.com/steveyegge/graphmig/internal/schema"
)

// Check command prefixes, most specific first.
var checkCommandPrefixes = []struct {
	prefix string
	kind   schema.CheckCommandKind
}{
	{"check_mk-", schema.PassiveCheck},
	{"check_mk_active-", schema.ActiveCheck},
	{"check-mk-", schema.HostCheckCommand},
	{"check_", schema.NagiosPlugin},
}

// ParseCheckCommand derives the check command from a legacy check command
// name such as "check_mk-df".
func ParseCheckCommand(name string) (schema.CheckCommand, error) {
	for _, p := range checkCommandPrefixes {
		if rest, ok := strings.CutPrefix(name, p.prefix); ok {
			return schema.CheckCommand{Kind: p.kind, Name: rest}, nil
		}
	}
	return schema.CheckCommand{}, failure.Schemaf("check command", name, "unknown check command prefix")
}

// translationRule builds the rule of one legacy metric. ok is false for
// entries that neither rename nor scale.
func translationRule(entry legacy.CheckMetricEntry) (rule schema.TranslationRule, ok bool, err error) {
	var factor schema.Bound
	if entry.Scale != nil {
		n, integer, numeric := entry.Scale.Number()
		if !numeric {
			return rule, false, failure.Schemaf("check metric", "scale", "expected a number, got %q", entry.Scale.String())
		}
		if integer {
			factor = schema.IntBound(int64(n))
		} else {
			factor = schema.FloatBound(n)
		}
	}

	switch {
	case entry.Name != nil && entry.Scale != nil:
		return schema.TranslationRule{Kind: schema.RenameToAndScaleBy, MetricName: *entry.Name, Factor: factor}, true, nil
	case entry.Name != nil:
		return schema.TranslationRule{Kind: schema.RenameTo, MetricName: *entry.Name}, true, nil
	case entry.Scale != nil:
		return schema.TranslationRule{Kind: schema.ScaleBy, Factor: factor}, true, nil
	}
	return rule, false, nil
}

// groupKey identifies a sorted list of metric translations. Factors compare
// by value, so ScaleBy(1) and ScaleBy(1.0) are the same translation.
func groupKey(translations []schema.MetricTranslation) string {
	parts := lo.Map(translations, func(t schema.MetricTranslation, _ int) string {
		factor := ""
		if v, _, ok := t.Rule.Factor.Literal(); ok {
			if v == 0 {
				v = 0 // normalize -0
			}
			factor = strconv.FormatFloat(v, 'g', -1, 64)
		}
		return fmt.Sprintf("%s\x00%s\x00%s\x00%s", t.LegacyName, t.Rule.Kind, t.Rule.MetricName, factor)
	})
	return strings.Join(parts, "\x01")
}

type translationGroup struct {
	translations []schema.MetricTranslation
	commands     []schema.CheckCommand
}

// translations migrates check metrics. Check commands with identical
// translations share one Translation named after all of them.
func (m *Migrator) translations(checkMetrics *legacy.Ordered[*legacy.Ordered[legacy.CheckMetricEntry]]) ([]schema.Translation, error) {
	groups := legacy.NewOrdered[*translationGroup]()

	for name, entries := range checkMetrics.All() {
		err := m.try(schema.NamespaceTranslations, name, func() error {
			command, err := ParseCheckCommand(name)
			if err != nil {
				return err
			}

			var translations []schema.MetricTranslation
			for legacyName, entry := range entries.All() {
				rule, ok, err := translationRule(entry)
				if err != nil {
					return err
				}
				if ok {
					translations = append(translations, schema.MetricTranslation{LegacyName: legacyName, Rule: rule})
				}
			}
			slices.SortStableFunc(translations, func(a, b schema.MetricTranslation) int {
				return strings.Compare(a.LegacyName, b.LegacyName)
			})

			key := groupKey(translations)
			group, ok := groups.Get(key)
			if !ok {
				group = &translationGroup{translations: translations}
				groups.Set(key, group)
			}
			group.commands = append(group.commands, command)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	var migrated []schema.Translation
	for _, group := range groups.All() {
		name := strings.Join(lo.Map(group.commands, func(c schema.CheckCommand, _ int) string { return c.Name }), "_")
		err := m.try(schema.NamespaceTranslations, name, func() error {
			if len(group.translations) == 0 {
				return failure.Schemaf("translation", "translations", "no metric is renamed or scaled")
			}
			migrated = append(migrated, schema.Translation{
				Name:          name,
				CheckCommands: group.commands,
				Translations:  group.translations,
			})
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return migrated, nil
}
