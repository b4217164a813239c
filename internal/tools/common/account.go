package common

// GetAccountFromArgs returns the "account" argument of a tool call, or ""
// when the caller did not name one. The server context maps "" to its
// configured default account.
func GetAccountFromArgs(args map[string]any) string {
	if account, ok := args["account"].(string); ok {
		return account
	}
	return ""
}

// StringArg returns the string argument key, or "" when it is missing or
// not a string.
func StringArg(args map[string]any, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}
