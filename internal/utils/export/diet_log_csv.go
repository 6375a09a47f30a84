package export

import (
	"PetDiary/entities"
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"
)

const ContentTypeCSV = "text/csv; charset=utf-8"

// utf8BOM lets spreadsheet apps detect the encoding of the CJK headers.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var dietLogHeader = []string{"時間", "日期", "餐別", "食物", "淨重", "熱量", "蛋白質", "脂肪", "磷", "類型"}

// DietLogsCSV renders entries in the given order. Timestamps are shown in loc.
func DietLogsCSV(logs []entities.DietLog, loc *time.Location) ([]byte, error) {
	if loc == nil {
		loc = time.Local
	}

	var buf bytes.Buffer
	buf.Write(utf8BOM)

	w := csv.NewWriter(&buf)
	if err := w.Write(dietLogHeader); err != nil {
		return nil, err
	}
	for _, l := range logs {
		record := []string{
			l.LoggedAt.In(loc).Format("2006-01-02 15:04:05"),
			l.DateStr,
			l.MealName,
			l.FoodName,
			formatFloat(l.NetWeight),
			formatFloat(l.Calories),
			formatFloat(l.Protein),
			formatFloat(l.Fat),
			formatFloat(l.Phos),
			string(l.LogType),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func FileName(petName string) string {
	return fmt.Sprintf("%s_record.csv", petName)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
