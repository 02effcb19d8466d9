package domain

// Report represents a complete analysis report: a cover page followed by
// ordered sheets. Rendering details live behind the export.Renderer
// implementations.
type Report struct {
	Title    string
	Subtitle string
	Cover    Cover
	Sheets   []Sheet
}

// Cover holds the cover-page content: up to four headline metric cards
// plus a footer line.
type Cover struct {
	Metrics []CoverMetric
	Footer  string
}

// CoverMetric is a single labelled headline value.
type CoverMetric struct {
	Label string
	Value string
	Note  string
}

// Sheet is one worksheet: a titled table with optional charts,
// conditional formats and footnotes.
type Sheet struct {
	Name      string
	Title     string
	Table     Table
	Charts    []Chart
	Formats   []ConditionalFormat
	Footnotes []string
}

// Table is a named tabular block with fixed column order.
type Table struct {
	Title   string
	Columns []Column
	Rows    [][]interface{}
}

// Column describes one table column.
type Column struct {
	Name string
	// Kind drives number formatting at render time.
	Kind ColumnKind
}

type ColumnKind int

const (
	ColumnText ColumnKind = iota
	ColumnInteger
	ColumnAmount
	ColumnPercent
	ColumnStatus
)

// ChartKind selects the chart type to draw.
type ChartKind string

const (
	ChartBar      ChartKind = "bar"
	ChartLine     ChartKind = "line"
	ChartDoughnut ChartKind = "doughnut"
	// ChartCombo draws bars for ValueColumn and a line for LineColumn.
	ChartCombo ChartKind = "combo"
)

// Chart requests a chart over table columns. Columns are 1-based indexes
// into the sheet's table; MaxRows limits the plotted rows (0 = all).
type Chart struct {
	Kind        ChartKind
	Title       string
	LabelColumn int
	ValueColumn int
	LineColumn  int
	MaxRows     int
}

// FormatKind selects a conditional-formatting rule.
type FormatKind string

const (
	FormatColorScale FormatKind = "colorscale"
	FormatDataBar    FormatKind = "databar"
)

// ConditionalFormat applies a rule over one table column (1-based).
// Reverse flips the color scale so high values read as bad.
type ConditionalFormat struct {
	Kind    FormatKind
	Column  int
	Reverse bool
}
