package buildconfig

// Build-time variables injected via ldflags:
//
//	-ldflags "-X github.com/garageconnect/customer/internal/buildconfig.version=1.4.0"
var (
	version = "dev"
	commit  = "unknown"
)

func Version() string {
	return version
}

func Commit() string {
	return commit
}

// VersionInfo is reported by the health endpoint.
func VersionInfo() map[string]string {
	return map[string]string{
		"version": version,
		"commit":  commit,
	}
}
