package repository

// ReadPolicy governs which kinds of sources a read may consult
type ReadPolicy int

const (
	// ReadCacheAndReadable consults caches first and falls back to readable sources
	ReadCacheAndReadable ReadPolicy = iota
	// ReadCacheOnly consults cache sources only
	ReadCacheOnly
	// ReadReadableOnly skips caches and goes straight to readable sources
	ReadReadableOnly
)

// String implements fmt.Stringer
func (p ReadPolicy) String() string {
	switch p {
	case ReadCacheAndReadable:
		return "cache_and_readable"
	case ReadCacheOnly:
		return "cache_only"
	case ReadReadableOnly:
		return "readable_only"
	default:
		return "unknown"
	}
}

func (p ReadPolicy) useCaches() bool {
	return p == ReadCacheAndReadable || p == ReadCacheOnly
}

func (p ReadPolicy) useReadables() bool {
	return p == ReadCacheAndReadable || p == ReadReadableOnly
}

// WritePolicy governs how many targets a write must reach
type WritePolicy int

const (
	// WriteAll attempts every target and succeeds if at least one accepted the write
	WriteAll WritePolicy = iota
	// WriteOnce stops at the first writeable source that accepts the write
	WriteOnce
	// WriteAllStrict attempts every target and fails if any of them failed
	WriteAllStrict
)

// String implements fmt.Stringer
func (p WritePolicy) String() string {
	switch p {
	case WriteAll:
		return "write_all"
	case WriteOnce:
		return "write_once"
	case WriteAllStrict:
		return "write_all_strict"
	default:
		return "unknown"
	}
}

func readPolicy(policies []ReadPolicy) ReadPolicy {
	if len(policies) == 0 {
		return ReadCacheAndReadable
	}
	return policies[0]
}

func writePolicy(policies []WritePolicy) WritePolicy {
	if len(policies) == 0 {
		return WriteAll
	}
	return policies[0]
}
