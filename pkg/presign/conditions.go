package presign

// Condition is a single policy condition the storage provider enforces when
// a presigned POST authorization is redeemed.
type Condition interface {
	// Key identifies the condition kind. A ConditionSet holds at most one
	// condition per key.
	Key() string

	// PolicyEntry returns the condition in POST-policy document form.
	PolicyEntry() interface{}
}

// ExactMatchCondition requires a form field to carry exactly the given value.
type ExactMatchCondition struct {
	Field string
	Value string
}

func (c ExactMatchCondition) Key() string {
	return c.Field
}

func (c ExactMatchCondition) PolicyEntry() interface{} {
	return map[string]string{c.Field: c.Value}
}

// ContentLengthRangeCondition bounds the uploaded object size in bytes,
// inclusive on both ends.
type ContentLengthRangeCondition struct {
	Min int64
	Max int64
}

func (c ContentLengthRangeCondition) Key() string {
	return "content-length-range"
}

func (c ContentLengthRangeCondition) PolicyEntry() interface{} {
	return []interface{}{"content-length-range", c.Min, c.Max}
}

// ConditionSet is an ordered set of policy conditions keyed by condition
// kind. Storage providers reject a policy naming the same field twice, so
// uniqueness is guaranteed by construction rather than by cleanup.
type ConditionSet struct {
	keys  []string
	byKey map[string]Condition
}

// NewConditionSet builds a set from the given conditions in order.
func NewConditionSet(conditions ...Condition) *ConditionSet {
	s := &ConditionSet{byKey: make(map[string]Condition, len(conditions))}
	for _, c := range conditions {
		s.Put(c)
	}
	return s
}

// Put adds a condition to the end of the set. If a condition of the same
// kind is already present it is removed first, so the latest value wins and
// the kind still appears exactly once.
func (s *ConditionSet) Put(c Condition) {
	key := c.Key()
	if _, exists := s.byKey[key]; exists {
		for i, k := range s.keys {
			if k == key {
				s.keys = append(s.keys[:i], s.keys[i+1:]...)
				break
			}
		}
	}
	s.keys = append(s.keys, key)
	s.byKey[key] = c
}

// Conditions returns the conditions in insertion order.
func (s *ConditionSet) Conditions() []Condition {
	out := make([]Condition, 0, len(s.keys))
	for _, k := range s.keys {
		out = append(out, s.byKey[k])
	}
	return out
}

// Len returns the number of conditions in the set.
func (s *ConditionSet) Len() int {
	return len(s.keys)
}
