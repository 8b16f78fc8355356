package cleaner

import (
	"strings"

	"github.com/Ajith-oo7/Data-lysis/internal/dataset"
)

// engineerFeatures is stage 11 (opt-in): datetime columns expand into
// year/month/day/weekday features; text columns into length and word-count
// features.
func (p *Pipeline) engineerFeatures(ds *dataset.Dataset) *dataset.Dataset {
	cfg := p.opts.Features

	if cfg.ExtractDateFeatures {
		for _, col := range ds.Columns() {
			if col.Type != dataset.TypeTime {
				continue
			}
			year := &dataset.Column{Name: col.Name + "_year", Type: dataset.TypeFloat}
			month := &dataset.Column{Name: col.Name + "_month", Type: dataset.TypeFloat}
			day := &dataset.Column{Name: col.Name + "_day", Type: dataset.TypeFloat}
			weekday := &dataset.Column{Name: col.Name + "_weekday", Type: dataset.TypeFloat}
			for _, cell := range col.Cells {
				t, ok := cell.Timestamp()
				if !ok {
					year.Cells = append(year.Cells, dataset.Null())
					month.Cells = append(month.Cells, dataset.Null())
					day.Cells = append(day.Cells, dataset.Null())
					weekday.Cells = append(weekday.Cells, dataset.Null())
					continue
				}
				year.Cells = append(year.Cells, dataset.Float(float64(t.Year())))
				month.Cells = append(month.Cells, dataset.Float(float64(t.Month())))
				day.Cells = append(day.Cells, dataset.Float(float64(t.Day())))
				// Monday=0 ordering
				weekday.Cells = append(weekday.Cells, dataset.Float(float64((int(t.Weekday())+6)%7)))
			}
			ds.AddColumn(year)
			ds.AddColumn(month)
			ds.AddColumn(day)
			ds.AddColumn(weekday)
		}
	}

	if cfg.ExtractTextFeatures {
		for _, col := range ds.Columns() {
			if col.Type != dataset.TypeString {
				continue
			}
			if strings.HasSuffix(col.Name, "_length") || strings.HasSuffix(col.Name, "_word_count") {
				continue
			}
			length := &dataset.Column{Name: col.Name + "_length", Type: dataset.TypeFloat}
			wordCount := &dataset.Column{Name: col.Name + "_word_count", Type: dataset.TypeFloat}
			for _, cell := range col.Cells {
				s, ok := cell.Text()
				if !ok {
					length.Cells = append(length.Cells, dataset.Null())
					wordCount.Cells = append(wordCount.Cells, dataset.Null())
					continue
				}
				length.Cells = append(length.Cells, dataset.Float(float64(len(s))))
				wordCount.Cells = append(wordCount.Cells, dataset.Float(float64(len(strings.Fields(s)))))
			}
			ds.AddColumn(length)
			ds.AddColumn(wordCount)
		}
	}

	return ds
}
