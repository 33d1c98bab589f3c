package mocks

// FlagSet serves flag values from Values. Missing flags return the default.
type FlagSet struct {
	Values map[string]interface{}
}

func (fs *FlagSet) GetStringOrDefault(flag, d string) string {
	if val, ok := fs.Values[flag]; ok {
		return val.(string)
	}

	return d
}

func (fs *FlagSet) GetBoolOrDefault(flag string, d bool) bool {
	if val, ok := fs.Values[flag]; ok {
		return val.(bool)
	}

	return d
}
