package postgres

import "embed"

//go:embed scripts/*.sql
var scriptsFS embed.FS

// ResetScript returns the DDL that drops and recreates every
// destination table. Run on the admin credential set before each load.
func ResetScript() string {
	return mustScript("scripts/reset.sql")
}

// FinalizeScript returns the post-load script building reporting views
// and grants.
func FinalizeScript() string {
	return mustScript("scripts/finalize.sql")
}

func mustScript(name string) string {
	data, err := scriptsFS.ReadFile(name)
	if err != nil {
		// embedded at compile time, absence is a build defect
		panic(err)
	}
	return string(data)
}
