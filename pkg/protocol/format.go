package protocol

import "strconv"

// DefaultRate is the sampling rate at which every event is sent.
const DefaultRate = 1.0

// Gauge renders an absolute gauge line: "<name>:<value>|g".
func Gauge(name string, value int64) string {
	return name + ":" + strconv.FormatInt(value, 10) + "|g"
}

// GaugeDelta renders a signed gauge adjustment: "<name>:<sign><abs>|g".
// The sign is always present; a zero delta renders as "+0" so the daemon
// reads it as an adjustment rather than an absolute set.
func GaugeDelta(name string, delta int64) string {
	if delta < 0 {
		return name + ":" + strconv.FormatInt(delta, 10) + "|g"
	}
	return name + ":+" + strconv.FormatInt(delta, 10) + "|g"
}

// Counter renders a counter line: "<name>:<delta>|c", with a "|@<rate>"
// suffix when rate is not 1.
func Counter(name string, delta int64, rate float64) string {
	line := name + ":" + strconv.FormatInt(delta, 10) + "|c"
	if rate == DefaultRate {
		return line
	}
	return line + "|@" + FormatRate(rate)
}

// Timing renders a timing line in whole milliseconds: "<name>:<ms>|ms".
func Timing(name string, ms int64) string {
	return name + ":" + strconv.FormatInt(ms, 10) + "|ms"
}

// FormatRate renders a sampling rate as the shortest decimal string that
// round-trips float64, e.g. 0.5 -> "0.5" and 0.999999 -> "0.999999".
func FormatRate(rate float64) string {
	return strconv.FormatFloat(rate, 'g', -1, 64)
}
