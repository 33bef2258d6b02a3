package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

type (
	TagsJSON []string

	// GeoLocationJSON is the best-effort location stored alongside a traffic log.
	GeoLocationJSON struct {
		Country string  `json:"country,omitempty"`
		City    string  `json:"city,omitempty"`
		Region  string  `json:"region,omitempty"`
		Lat     float64 `json:"lat,omitempty"`
		Lon     float64 `json:"lon,omitempty"`
		ISP     string  `json:"isp,omitempty"`
	}
)

func (t TagsJSON) Value() (driver.Value, error) {
	if t == nil {
		return nil, nil
	}
	return json.Marshal(t)
}

func (t *TagsJSON) Scan(value interface{}) error {
	if value == nil {
		*t = nil
		return nil
	}
	bytes, err := scanBytes(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(bytes, t)
}

func (g GeoLocationJSON) Value() (driver.Value, error) {
	return json.Marshal(g)
}

func (g *GeoLocationJSON) Scan(value interface{}) error {
	if value == nil {
		*g = GeoLocationJSON{}
		return nil
	}
	bytes, err := scanBytes(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(bytes, g)
}

func scanBytes(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("expected []byte, got %T", value)
	}
}
