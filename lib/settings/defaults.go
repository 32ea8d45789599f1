package settings

const (
	KeySiteName      = "system/site/name"
	KeySiteID        = "system/site/siteId"
	KeySiteOrg       = "system/site/organization"
	KeyPlatformVer   = "system/platform/version"
	KeyServerHost    = "system/server/host"
	KeyServerPort    = "system/server/port"
	KeyServerProto   = "system/server/protocol"
	KeyProxyUse      = "system/proxy/use"
	KeyProxyHost     = "system/proxy/host"
	KeyProxyPassword = "system/proxy/password"
	KeyFeedbackEmail = "system/feedback/email"
	KeyUIConfig      = "ui/config"
)

// Defaults is the built-in settings catalogue written on first start.
func Defaults() []Definition {
	return []Definition{
		{Name: KeySiteName, Value: "My GeoNetwork catalogue", DataType: TypeString, Position: 110},
		{Name: KeySiteID, Value: "", DataType: TypeString, Position: 120},
		{Name: KeySiteOrg, Value: "My organization", DataType: TypeString, Position: 130},
		{Name: KeyPlatformVer, Value: "4.4.0", DataType: TypeString, Position: 150},
		{Name: KeyServerHost, Value: "localhost", DataType: TypeString, Position: 210, Internal: true},
		{Name: KeyServerPort, Value: "8080", DataType: TypeInt, Position: 220, Internal: true},
		{Name: KeyServerProto, Value: "http", DataType: TypeString, Position: 230, Internal: true},
		{Name: KeyProxyUse, Value: "false", DataType: TypeBoolean, Position: 510, Internal: true},
		{Name: KeyProxyHost, Value: "", DataType: TypeString, Position: 520, Internal: true},
		{Name: KeyProxyPassword, Value: "", DataType: TypePassword, Position: 550, Internal: true},
		{Name: KeyFeedbackEmail, Value: "", DataType: TypeString, Position: 610, Internal: true},
		{Name: KeyUIConfig, Value: "{}", DataType: TypeJSON, Position: 10000},
	}
}
