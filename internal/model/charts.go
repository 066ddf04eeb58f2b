package model

// Chart types the dashboard collaborator may emit.
const (
	ChartBar     = "bar"
	ChartLine    = "line"
	ChartPie     = "pie"
	ChartArea    = "area"
	ChartScatter = "scatter"
)

// ChartDescriptor is one proposed chart configuration. It is produced
// entirely by the AI collaborator and passed through to the rendering
// side unvalidated and unmodified.
type ChartDescriptor struct {
	Title       string   `json:"title"`
	ChartType   string   `json:"chartType"`
	DataKey     string   `json:"dataKey"`   // category / x-axis column
	ValueKeys   []string `json:"valueKeys"` // numeric columns, ordered
	Description string   `json:"description"`
}
