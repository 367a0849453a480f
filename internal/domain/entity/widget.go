package entity

import "encoding/json"

// MetricSelector identifica uma série temporal de um virtual interface do Direct Connect.
type MetricSelector struct {
	Namespace          string
	MetricName         string
	ConnectionID       string
	VirtualInterfaceID string
}

// Tuple devolve o seletor no formato posicional aceito pelo CloudWatch:
// [namespace, metric, "ConnectionId", conn, "VirtualInterfaceId", vif].
func (s MetricSelector) Tuple(namespace string) []string {
	return []string{
		namespace,
		s.MetricName,
		"ConnectionId", s.ConnectionID,
		"VirtualInterfaceId", s.VirtualInterfaceID,
	}
}

// MetricRows é a lista de seletores de um widget. Namespaces repetidos
// são serializados com o token "." do CloudWatch.
type MetricRows []MetricSelector

func (rows MetricRows) MarshalJSON() ([]byte, error) {
	out := make([][]string, 0, len(rows))
	prev := ""
	for i, row := range rows {
		ns := row.Namespace
		if i > 0 && ns == prev {
			ns = "."
		}
		prev = row.Namespace
		out = append(out, row.Tuple(ns))
	}
	return json.Marshal(out)
}

// AxisOptions configura um eixo do gráfico.
type AxisOptions struct {
	Label     string `json:"label"`
	ShowUnits bool   `json:"showUnits"`
}

// YAxis configura o eixo Y do gráfico.
type YAxis struct {
	Left AxisOptions `json:"left"`
}

// MetricWidget é a descrição declarativa do gráfico renderizado pelo CloudWatch.
type MetricWidget struct {
	Width   int        `json:"width"`
	Height  int        `json:"height"`
	Start   string     `json:"start"`
	End     string     `json:"end"`
	Metrics MetricRows `json:"metrics"`
	Period  int        `json:"period"`
	Stat    string     `json:"stat"`
	Title   string     `json:"title"`
	YAxis   YAxis      `json:"yAxis"`
}
