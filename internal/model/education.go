package model

// EducationStage is a life-stage band of a child's schooling.
type EducationStage string

const (
	StageNone         EducationStage = ""
	StageKindergarten EducationStage = "kindergarten"
	StageElementary   EducationStage = "elementary"
	StageJuniorHigh   EducationStage = "junior_high"
	StageHighSchool   EducationStage = "high_school"
	StageUniversity   EducationStage = "university"
)

// Stages lists the schooling bands in order.
var Stages = []EducationStage{
	StageKindergarten, StageElementary, StageJuniorHigh, StageHighSchool, StageUniversity,
}

// StageForAge maps a child's age to its schooling band.
// Kindergarten 3-5, elementary 6-11, junior high 12-14, high school 15-17,
// university 18-21, otherwise none.
func StageForAge(age int) EducationStage {
	switch {
	case age >= 3 && age <= 5:
		return StageKindergarten
	case age >= 6 && age <= 11:
		return StageElementary
	case age >= 12 && age <= 14:
		return StageJuniorHigh
	case age >= 15 && age <= 17:
		return StageHighSchool
	case age >= 18 && age <= 21:
		return StageUniversity
	default:
		return StageNone
	}
}

// Track returns the chosen track for a stage as its table key.
func (t EducationTrack) Track(stage EducationStage) string {
	switch stage {
	case StageKindergarten:
		return string(t.Kindergarten)
	case StageElementary:
		return string(t.Elementary)
	case StageJuniorHigh:
		return string(t.JuniorHigh)
	case StageHighSchool:
		return string(t.HighSchool)
	case StageUniversity:
		return string(t.University)
	}
	return ""
}
