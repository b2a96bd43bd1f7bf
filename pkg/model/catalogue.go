package model

// Field names shared by the rule set, renderers, and the HTTP form codec.
const (
	FieldFullName             = "fullName"
	FieldEmail                = "email"
	FieldSurveyTopic          = "surveyTopic"
	FieldFavoriteLanguage     = "favoriteLanguage"
	FieldYearsOfExperience    = "yearsOfExperience"
	FieldExerciseFrequency    = "exerciseFrequency"
	FieldDietPreference       = "dietPreference"
	FieldHighestQualification = "highestQualification"
	FieldFieldOfStudy         = "fieldOfStudy"
	FieldFeedback             = "feedback"
)

// FeedbackMinLength is the minimum feedback length in characters.
const FeedbackMinLength = 50

// Identity fields rendered above the topic selector.
var (
	FullName = Field{
		Name:    FieldFullName,
		Label:   "Full Name",
		Control: ControlText,
	}
	Email = Field{
		Name:    FieldEmail,
		Label:   "Email",
		Control: ControlEmail,
	}
	Feedback = Field{
		Name:    FieldFeedback,
		Label:   "Feedback",
		Control: ControlTextArea,
		Rows:    4,
	}
)

// SurveyTopicLabel labels the topic selector. The options live with the
// topic variants.
const (
	SurveyTopicLabel       = "Survey Topic"
	SurveyTopicPlaceholder = "Select Topic"
)
