package traversal

import "strings"

// systemPathBlacklist is matched as a case-sensitive substring against the
// full path of every directory visited, independent of SkipCommonDirs. This
// grounds original_source/src/search.c's system_paths array and is_system_directory.
var systemPathBlacklist = []string{
	`$Recycle.Bin`,
	`System Volume Information`,
	`Windows\System32`,
	`Windows\SysWOW64`,
	`Program Files`,
	`Program Files (x86)`,
	`ProgramData`,
	`Recovery`,
	`hiberfil.sys`,
	`pagefile.sys`,
	`swapfile.sys`,
}

// commonSkipSet is matched against a directory's base name, case-insensitive,
// only when SkipCommonDirs is enabled. Grounds search.c's skip_directories
// array and should_skip_directory.
var commonSkipSet = map[string]struct{}{
	"$recycle.bin":               {},
	"system volume information":  {},
	"windows":                    {},
	"program files":              {},
	"program files (x86)":        {},
	"programdata":                {},
	"recovery":                   {},
	"node_modules":                {},
	".git":                       {},
	".svn":                       {},
	"__pycache__":                {},
	"obj":                        {},
	"bin":                        {},
	"debug":                      {},
	"release":                    {},
	".vs":                        {},
	"packages":                   {},
	"bower_components":           {},
	"dist":                       {},
	"build":                      {},
}

// isBlacklisted reports whether path contains any hardcoded system path.
func isBlacklisted(path string) bool {
	for _, s := range systemPathBlacklist {
		if strings.Contains(path, s) {
			return true
		}
	}
	return false
}

// isCommonSkip reports whether baseName is in the common-skip set.
func isCommonSkip(baseName string) bool {
	_, ok := commonSkipSet[strings.ToLower(baseName)]
	return ok
}
