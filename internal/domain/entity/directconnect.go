package entity

// VirtualInterfaceInfo descreve um virtual interface do Direct Connect
// que pode ser selecionado pelo relatório.
type VirtualInterfaceInfo struct {
	ConnectionID         string `json:"connection_id"`
	VirtualInterfaceID   string `json:"virtual_interface_id"`
	VirtualInterfaceName string `json:"virtual_interface_name"`
	VirtualInterfaceType string `json:"virtual_interface_type"`
	State                string `json:"state"`
	Vlan                 int32  `json:"vlan"`
	Region               string `json:"region"`
}
