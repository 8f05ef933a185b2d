package constants

// Reasons offered by the entry form
var Reasons = []string{
	"Craving",
	"Stress",
	"Focus",
	"Social",
	"Boredom",
	"After meal",
	"Habit",
}

// HealthEffects offered by the entry form
var HealthEffects = []string{
	"Headache",
	"Nausea",
	"Dizziness",
	"Racing heart",
	"Jittery",
	"Throat irritation",
	"Relaxed",
	"Alert",
}
