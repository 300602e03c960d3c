package version

// Version is the tradelog release. It is set at build time with
// -ldflags "-X github.com/rxtech-lab/argo-tradelog/internal/version.Version=v1.2.3".
// "main" marks a development build.
var Version = "main"

// GetVersion returns the current version of tradelog.
func GetVersion() string {
	return Version
}
