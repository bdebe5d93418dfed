package models

// SetupKind identifies a configured import setup flavor.
type SetupKind string

// Known setup kinds.
const (
	SetupKindUsfX12   SetupKind = "usf-x12"
	SetupKindSyscoX12 SetupKind = "sysco-x12"
)

// ImportSetup is the per-location-vendor import configuration. EDI
// processors check its concrete type to decide whether they apply.
type ImportSetup interface {
	Kind() SetupKind
}

// X12ImportSetup carries the EDI customer number shared by all X12 setups.
type X12ImportSetup struct {
	CustomerNumber string
}

// UsfX12ImportSetup configures US Foods 832 imports.
type UsfX12ImportSetup struct {
	X12ImportSetup
}

// Kind implements ImportSetup.
func (*UsfX12ImportSetup) Kind() SetupKind { return SetupKindUsfX12 }

// SyscoX12ImportSetup configures Sysco 832 imports.
type SyscoX12ImportSetup struct {
	X12ImportSetup
}

// Kind implements ImportSetup.
func (*SyscoX12ImportSetup) Kind() SetupKind { return SetupKindSyscoX12 }
