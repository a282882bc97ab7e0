package lts

// StressClass is the level of traffic stress a cyclist experiences on a
// street segment. Classes are ordered: LTS_1 is the calmest, LTS_4 the most
// hostile. The zero value marks a segment which has not been classified yet.
type StressClass uint16

const (
	LTS_1 = StressClass(iota + 1)
	LTS_2
	LTS_3
	LTS_4
)

func (iotaIdx StressClass) String() string {
	return [...]string{"unclassified", "lts1", "lts2", "lts3", "lts4"}[iotaIdx]
}

// Level returns the numeric stress level (1 to 4).
func (iotaIdx StressClass) Level() int {
	return int(iotaIdx)
}
