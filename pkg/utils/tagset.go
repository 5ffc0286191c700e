package utils

import "strings"

/**************************************************************************************************
** TTagSet is an ordered set of tags: members are unique (case-sensitive) and keep their first
** insertion order for display.
**************************************************************************************************/
type TTagSet struct {
	values []string
}

/**************************************************************************************************
** NewTagSet builds a tag set from the given tags, dropping blanks and duplicates.
**************************************************************************************************/
func NewTagSet(tags ...string) *TTagSet {
	s := &TTagSet{}
	for _, tag := range tags {
		s.Add(tag)
	}
	return s
}

/**************************************************************************************************
** Add inserts a tag after trimming surrounding whitespace. Blank tags and tags already present
** are ignored.
**
** @param tag - Tag to insert
** @return bool - True if the tag was added
**************************************************************************************************/
func (s *TTagSet) Add(tag string) bool {
	tag = strings.TrimSpace(tag)
	if tag == "" || s.Contains(tag) {
		return false
	}
	s.values = append(s.values, tag)
	return true
}

// Remove deletes a tag, keeping the order of the others.
func (s *TTagSet) Remove(tag string) bool {
	for i, v := range s.values {
		if v == tag {
			s.values = append(s.values[:i:i], s.values[i+1:]...)
			return true
		}
	}
	return false
}

// Toggle removes the tag if present, adds it otherwise.
func (s *TTagSet) Toggle(tag string) {
	if !s.Remove(strings.TrimSpace(tag)) {
		s.Add(tag)
	}
}

func (s *TTagSet) Contains(tag string) bool {
	return Contains(s.values, tag)
}

func (s *TTagSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.values)
}

// Values returns a copy of the members in display order.
func (s *TTagSet) Values() []string {
	if s == nil {
		return []string{}
	}
	out := make([]string, len(s.values))
	copy(out, s.values)
	return out
}
