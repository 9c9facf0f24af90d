package app

// Version stamps for `atomizer -version`, set with
// -ldflags "-X github.com/hyperifyio/atomizer/internal/app.BuildVersion=...".
var (
	BuildVersion = "0.0.0-dev"
	BuildCommit  = "unknown"
	BuildDate    = "unknown"
)
