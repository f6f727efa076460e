package asklocal

import (
	"encoding/json"
	"fmt"
	"strconv"
)

type askRequest struct {
	Question           any    `json:"question"`
	PreferredParishIDs idList `json:"preferred_parish_ids"`
	PreferredRegionIDs idList `json:"preferred_region_ids"`
}

// question returns the question when it is a JSON string, else "".
func (r askRequest) question() string {
	s, _ := r.Question.(string)
	return s
}

func (r askRequest) regionIDs() []string {
	ids := make([]string, 0, len(r.PreferredParishIDs)+len(r.PreferredRegionIDs))
	ids = append(ids, r.PreferredParishIDs...)
	return append(ids, r.PreferredRegionIDs...)
}

// idList accepts an array of strings or numbers. Any other JSON value means "no filter".
type idList []string

func (l *idList) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	values, ok := raw.([]any)
	if !ok {
		*l = nil
		return nil
	}
	ids := make([]string, 0, len(values))
	for _, v := range values {
		switch id := v.(type) {
		case nil:
		case string:
			ids = append(ids, id)
		case float64:
			ids = append(ids, strconv.FormatFloat(id, 'f', -1, 64))
		default:
			ids = append(ids, fmt.Sprint(id))
		}
	}
	*l = ids
	return nil
}
