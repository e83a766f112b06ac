package studio

import (
	"strconv"

	"github.com/nerrad567/knx-ga-studio/internal/naming"
)

// WorkbookSheet is the name of the single worksheet.
const WorkbookSheet = "Converted"

// WorkbookHeaders are the column headers of the mapping worksheet.
var WorkbookHeaders = []string{
	"Address",
	"FinalName",
	"GeneratedName",
	"OriginalName",
	"Main",
	"Middle",
	"Sub",
	"ModuleInMain",
	"ModuleGlobal",
	"ObjectType",
	"ObjectNo",
	"DeviceNo",
	"FunctionNo",
	"FunctionName",
	"DPT",
	"Location",
}

// workbookRows renders one row per entry in WorkbookHeaders order.
func workbookRows(entries []naming.Entry) [][]string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.Address,
			e.FinalName,
			e.GeneratedName,
			e.OriginalName,
			strconv.Itoa(e.Main),
			strconv.Itoa(e.Middle),
			strconv.Itoa(e.Sub),
			strconv.Itoa(e.ModuleInMain),
			strconv.Itoa(e.ModuleGlobal),
			e.ObjectLabel,
			strconv.Itoa(e.ObjectNo),
			strconv.Itoa(e.DeviceID),
			strconv.Itoa(e.FunctionCode),
			e.FunctionName,
			e.DPT,
			e.Location,
		})
	}
	return rows
}
