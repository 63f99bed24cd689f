package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"
)

// Row types mirror the seed CSV files. Numeric ids are only used to link
// rows inside one import run; stored records get fresh uuids.

// categoryRow also carries genre rows, the two files share a layout.
type categoryRow struct {
	ID   string
	Name string
	Slug string
}

type titleRow struct {
	ID         string
	Name       string
	Year       int
	CategoryID string
}

type genreTitleRow struct {
	TitleID string
	GenreID string
}

type userRow struct {
	ID        string
	Username  string
	Email     string
	Role      string
	Bio       string
	FirstName string
	LastName  string
}

type reviewRow struct {
	ID       string
	TitleID  string
	Text     string
	AuthorID string
	Score    int
	PubDate  time.Time
}

type commentRow struct {
	ID       string
	ReviewID string
	Text     string
	AuthorID string
	PubDate  time.Time
}

// readRecords consumes a CSV stream and returns a column index built from
// the header row plus the data records.
func readRecords(r io.Reader) (map[string]int, [][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("empty csv")
	}

	columns := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		columns[name] = i
	}
	return columns, rows[1:], nil
}

func field(columns map[string]int, record []string, name string) (string, error) {
	idx, ok := columns[name]
	if !ok {
		return "", fmt.Errorf("missing column %q", name)
	}
	if idx >= len(record) {
		return "", fmt.Errorf("row too short for column %q", name)
	}
	return record[idx], nil
}

func intField(columns map[string]int, record []string, name string) (int, error) {
	raw, err := field(columns, record, name)
	if err != nil {
		return 0, err
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("column %q: %w", name, err)
	}
	return value, nil
}

func timeField(columns map[string]int, record []string, name string) (time.Time, error) {
	raw, err := field(columns, record, name)
	if err != nil {
		return time.Time{}, err
	}
	value, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("column %q: %w", name, err)
	}
	return value, nil
}

func parseTaxonomy(r io.Reader) ([]categoryRow, error) {
	columns, records, err := readRecords(r)
	if err != nil {
		return nil, err
	}

	out := make([]categoryRow, 0, len(records))
	for _, record := range records {
		row := categoryRow{}
		if row.ID, err = field(columns, record, "id"); err != nil {
			return nil, err
		}
		if row.Name, err = field(columns, record, "name"); err != nil {
			return nil, err
		}
		if row.Slug, err = field(columns, record, "slug"); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, nil
}

func parseTitles(r io.Reader) ([]titleRow, error) {
	columns, records, err := readRecords(r)
	if err != nil {
		return nil, err
	}

	out := make([]titleRow, 0, len(records))
	for _, record := range records {
		row := titleRow{}
		if row.ID, err = field(columns, record, "id"); err != nil {
			return nil, err
		}
		if row.Name, err = field(columns, record, "name"); err != nil {
			return nil, err
		}
		if row.Year, err = intField(columns, record, "year"); err != nil {
			return nil, err
		}
		if row.CategoryID, err = field(columns, record, "category"); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, nil
}

func parseGenreTitles(r io.Reader) ([]genreTitleRow, error) {
	columns, records, err := readRecords(r)
	if err != nil {
		return nil, err
	}

	out := make([]genreTitleRow, 0, len(records))
	for _, record := range records {
		row := genreTitleRow{}
		if row.TitleID, err = field(columns, record, "title_id"); err != nil {
			return nil, err
		}
		if row.GenreID, err = field(columns, record, "genre_id"); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, nil
}

func parseUsers(r io.Reader) ([]userRow, error) {
	columns, records, err := readRecords(r)
	if err != nil {
		return nil, err
	}

	out := make([]userRow, 0, len(records))
	for _, record := range records {
		row := userRow{}
		if row.ID, err = field(columns, record, "id"); err != nil {
			return nil, err
		}
		if row.Username, err = field(columns, record, "username"); err != nil {
			return nil, err
		}
		if row.Email, err = field(columns, record, "email"); err != nil {
			return nil, err
		}
		if row.Role, err = field(columns, record, "role"); err != nil {
			return nil, err
		}
		// Optional profile columns.
		row.Bio, _ = field(columns, record, "bio")
		row.FirstName, _ = field(columns, record, "first_name")
		row.LastName, _ = field(columns, record, "last_name")
		out = append(out, row)
	}
	return out, nil
}

func parseReviews(r io.Reader) ([]reviewRow, error) {
	columns, records, err := readRecords(r)
	if err != nil {
		return nil, err
	}

	out := make([]reviewRow, 0, len(records))
	for _, record := range records {
		row := reviewRow{}
		if row.ID, err = field(columns, record, "id"); err != nil {
			return nil, err
		}
		if row.TitleID, err = field(columns, record, "title_id"); err != nil {
			return nil, err
		}
		if row.Text, err = field(columns, record, "text"); err != nil {
			return nil, err
		}
		if row.AuthorID, err = field(columns, record, "author"); err != nil {
			return nil, err
		}
		if row.Score, err = intField(columns, record, "score"); err != nil {
			return nil, err
		}
		if row.PubDate, err = timeField(columns, record, "pub_date"); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, nil
}

func parseComments(r io.Reader) ([]commentRow, error) {
	columns, records, err := readRecords(r)
	if err != nil {
		return nil, err
	}

	out := make([]commentRow, 0, len(records))
	for _, record := range records {
		row := commentRow{}
		if row.ID, err = field(columns, record, "id"); err != nil {
			return nil, err
		}
		if row.ReviewID, err = field(columns, record, "review_id"); err != nil {
			return nil, err
		}
		if row.Text, err = field(columns, record, "text"); err != nil {
			return nil, err
		}
		if row.AuthorID, err = field(columns, record, "author"); err != nil {
			return nil, err
		}
		if row.PubDate, err = timeField(columns, record, "pub_date"); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, nil
}
