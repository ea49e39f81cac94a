package rates

import "time"

var fxDateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05.000Z", "2006-01-02"}

func parseFXDate(s string) (time.Time, error) {
	var err error
	for _, layout := range fxDateLayouts {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}
