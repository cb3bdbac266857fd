package question

import "strconv"

// Question is one stored discussion question, tagged with its owner and week.
type Question struct {
	User string `json:"user"`
	Week uint8  `json:"week"`
	Text string `json:"text"`
}

// Key identifies a partition: every question one user has for one week.
type Key struct {
	User string
	Week uint8
}

// KeyOf returns the partition key a question belongs to.
func KeyOf(q Question) Key {
	return Key{User: q.User, Week: q.Week}
}

// String renders the key as "user/week", matching its on-disk location.
func (k Key) String() string {
	return k.User + "/" + strconv.FormatUint(uint64(k.Week), 10)
}

// Matches reports whether q belongs to partition k. Both user values are
// normalized before comparison.
func (k Key) Matches(q Question) bool {
	return q.Week == k.Week && NormalizeUser(q.User) == NormalizeUser(k.User)
}

// ParseWeek parses a decimal week number in the range 0-255.
func ParseWeek(s string) (uint8, error) {
	n, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, err
	}
	return uint8(n), nil
}
