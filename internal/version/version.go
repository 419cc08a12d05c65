package version

import "fmt"

const (
	Version = "v0.1.0"

	colorReset    = "\033[0m"
	colorCyanBold = "\033[36;1m"
)

// bannerTpl returns the colored banner of sqlitebind.
func bannerTpl() string {
	banner := `
           _ _ _       _     _           _
  ___  __ _| (_) |_ ___| |__ (_)_ __   __| |
 / __|/ _` + "`" + ` | | | __/ _ \ '_ \| | '_ \ / _` + "`" + ` |
 \__ \ (_| | | | ||  __/ |_) | | | | | (_| |
 |___/\__, |_|_|\__\___|_.__/|_|_| |_|\__,_|
         |_|
%s ` + Version + ` (SQLite %s)`

	banner = banner[1:] // This just removes the first newline character
	banner = colorCyanBold + banner + colorReset

	return banner
}

// ShellVersion returns the version banner of the sqlitebind shell.
func ShellVersion(sqliteVersion string) string {
	return fmt.Sprintf(bannerTpl(), "Shell", sqliteVersion)
}

// BenchVersion returns the version banner of sqlitebindbench.
func BenchVersion(sqliteVersion string) string {
	return fmt.Sprintf(bannerTpl(), "Bench", sqliteVersion)
}
