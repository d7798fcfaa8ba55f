package schema

// CheckCommandKind is the type of check command a translation applies to.
type CheckCommandKind int

const (
	PassiveCheck CheckCommandKind = iota
	ActiveCheck
	HostCheckCommand
	NagiosPlugin
)

var checkCommandNames = map[CheckCommandKind]string{
	PassiveCheck:     "PassiveCheck",
	ActiveCheck:      "ActiveCheck",
	HostCheckCommand: "HostCheckCommand",
	NagiosPlugin:     "NagiosPlugin",
}

func (k CheckCommandKind) String() string { return checkCommandNames[k] }

// CheckCommand identifies a check by kind and name.
type CheckCommand struct {
	Kind CheckCommandKind
	Name string
}

// TranslationKind is the operation applied to a legacy metric.
type TranslationKind int

const (
	RenameTo TranslationKind = iota
	ScaleBy
	RenameToAndScaleBy
)

var translationKindNames = map[TranslationKind]string{
	RenameTo:           "RenameTo",
	ScaleBy:            "ScaleBy",
	RenameToAndScaleBy: "RenameToAndScaleBy",
}

func (k TranslationKind) String() string { return translationKindNames[k] }

// TranslationRule renames and/or scales one legacy metric. Factor is only
// meaningful for ScaleBy and RenameToAndScaleBy.
type TranslationRule struct {
	Kind       TranslationKind
	MetricName string
	Factor     Bound
}

// MetricTranslation pairs a legacy metric name with its rule.
type MetricTranslation struct {
	LegacyName string
	Rule       TranslationRule
}

// Translation maps legacy metric names of a group of check commands.
type Translation struct {
	Name          string
	CheckCommands []CheckCommand
	Translations  []MetricTranslation
}

func (t Translation) ObjectName() string   { return t.Name }
func (t Translation) Namespace() Namespace { return NamespaceTranslations }
