package domain

import "time"

// Now is the timestamp source for Touch and constructors. Tests may replace it.
var Now = func() time.Time {
	return time.Now().UTC()
}
