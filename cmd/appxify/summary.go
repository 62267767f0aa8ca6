package main

import (
	"fmt"
	"strings"

	"appxify/internal/descriptor"
)

func renderAssetTable(result *descriptor.Result) string {
	rows := make([][]string, 0, 4)
	for _, resolved := range result.Assets.All() {
		rows = append(rows, []string{
			resolved.Slot.Name,
			fmt.Sprintf("%dx%d", resolved.Slot.Width, resolved.Slot.Height),
			resolved.Source,
			resolved.Path,
			yesNo(resolved.Synthesized),
		})
	}
	return renderTable(
		[]string{"Slot", "Size", "Source", "Path", "Scaled"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignLeft, alignLeft, alignLeft},
	)
}

func renderRuleTable(result *descriptor.Result) string {
	if len(result.Rules) == 0 {
		return "No content URI rules (packaged start page)"
	}
	rows := make([][]string, 0, len(result.Rules))
	for _, rule := range result.Rules {
		access := rule.APIAccess
		if strings.TrimSpace(access) == "" {
			access = "none"
		}
		rows = append(rows, []string{rule.URL, access})
	}
	return renderTable(
		[]string{"Match", "WinRT Access"},
		rows,
		[]columnAlignment{alignLeft, alignLeft},
	)
}
