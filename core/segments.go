package core

// Segment identifies an audience segment a study guide is tailored for.
type Segment string

const (
	// SegmentYoungAdults covers college students and young professionals.
	SegmentYoungAdults Segment = "young_adults"
	// SegmentAdults covers the established adult congregation.
	SegmentAdults Segment = "adults"
	// SegmentTeens covers middle and high school students.
	SegmentTeens Segment = "teens"
	// SegmentChildren covers elementary school children.
	SegmentChildren Segment = "children"
)

// SegmentProfile carries the tone and framing used when composing a study
// guide for a segment. Kept as data rather than a dispatch hierarchy.
type SegmentProfile struct {
	// Label is the human-readable segment name used in generated material.
	Label string
	// AgeRange describes the audience's age band.
	AgeRange string
	// Characteristics describes what the audience responds to.
	Characteristics string
	// Tone is the voice the generated guide should take.
	Tone string
	// QuizLevel calibrates the difficulty of the guide's quiz section.
	QuizLevel string
}

// SegmentProfiles is the configuration table mapping each segment to its
// guide-composition profile.
var SegmentProfiles = map[Segment]SegmentProfile{
	SegmentYoungAdults: {
		Label:           "Young Adults",
		AgeRange:        "20s-30s, college students and working professionals",
		Characteristics: "prefer authentic sharing over authoritative teaching, want concrete application to daily life",
		Tone:            "warm and witty while still landing the point",
		QuizLevel:       "approachable for newer believers",
	},
	SegmentAdults: {
		Label:           "Adults",
		AgeRange:        "40s-60s adults",
		Characteristics: "carry the weight of family and work, need deep comfort and insight drawn from lived experience",
		Tone:            "respectful, thoughtful, pastorally caring",
		QuizLevel:       "assumes working biblical literacy",
	},
	SegmentTeens: {
		Label:           "Teens",
		AgeRange:        "teenagers in middle and high school",
		Characteristics: "under academic stress and working out identity, prefer short high-impact messages",
		Tone:            "energetic, short, and punchy",
		QuizLevel:       "easy and fun",
	},
	SegmentChildren: {
		Label:           "Children",
		AgeRange:        "elementary school children",
		Characteristics: "active, need simple language, respond to storytelling",
		Tone:            "kind, simple teacher's voice",
		QuizLevel:       "very easy, mostly true/false",
	},
}

// ParseSegment maps a string to a known Segment.
// Returns ErrUnknownSegment for unrecognized values.
func ParseSegment(s string) (Segment, error) {
	segment := Segment(s)
	if _, ok := SegmentProfiles[segment]; !ok {
		return "", ErrUnknownSegment
	}
	return segment, nil
}
