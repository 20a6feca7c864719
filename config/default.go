package config

func GetDefault() Config {
	return Config{
		OutputFile:     "./CHANGELOG.md",
		OutputEncoding: "utf-8",
		Upstream:       "origin",
		Locale:         "en",
		GroupBy:        []string{GroupRelease, GroupLabel},
		UnreleasedGroup: GroupEntry{
			Key:  DefaultGroupKey,
			Name: "Unreleased",
		},
		LabelGroups: GroupConfig{
			{Key: "breaking", Name: "Breaking Changes"},
			{Key: "enhancement", Name: "Enhancement", Description: "New feature or request"},
			{Key: "bug", Name: "Bug", Description: "Something isn't working"},
			{Key: "documentation", Name: "Documentation", Description: "Improvements or additions to documentation"},
			{Key: DefaultGroupKey, Name: "Other"},
		},
		PathGroups: GroupConfig{
			{Key: "cmd", Name: "Commands"},
			{Key: "docs", Name: "Documentation"},
			{Key: DefaultGroupKey, Name: "Other"},
		},
	}
}
