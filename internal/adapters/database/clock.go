package database

import "time"

// Clock supplies server-side timestamps for repositories.
type Clock func() time.Time

func defaultClock() time.Time { return time.Now().UTC() }
