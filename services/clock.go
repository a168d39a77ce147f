package services

import "time"

// timeNow is the package clock, swapped in tests so status derivation and
// schedule arithmetic stay deterministic.
var timeNow = time.Now
