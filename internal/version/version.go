package version

const (
	AppName    = "Server Banker"
	AppVersion = "0.3.1"
)
