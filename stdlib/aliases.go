package stdlib

// legacyNames maps the names older WEA scripts call onto current natives.
var legacyNames = map[string]string{
	"type":        "typeof",
	"upper":       "wea_str_upper",
	"lower":       "wea_str_lower",
	"str_upper":   "wea_str_upper",
	"str_lower":   "wea_str_lower",
	"str_split":   "split",
	"str_replace": "replace",
	"str_trim":    "trim",
	"str_len":     "len",
	"str_has":     "contains",
}

// Aliases exposes natives found in libs under their legacy names.  Targets
// missing from libs are skipped.
func Aliases(libs ...Library) Library {
	var fns []*NativeFunc
	for alias, target := range legacyNames {
		for _, lib := range libs {
			if fn, ok := lib.Functions()[target]; ok {
				fns = append(fns, Native(alias, fn.NumArgs, fn.Fn))
				break
			}
		}
	}
	return NewLibrary("aliases", fns...)
}
