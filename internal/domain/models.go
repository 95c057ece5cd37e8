package domain

// Physical attribute and activity bounds accepted during profile setup.
const (
	MinWeightKg        = 20
	MaxWeightKg        = 500
	MinHeightCm        = 50
	MaxHeightCm        = 250
	MinAgeYears        = 5
	MaxAgeYears        = 100
	MinActivityMinutes = 0
	MaxActivityMinutes = 1440
)

// UserProfile is the durable per-user record of attributes and running totals.
// Attribute pointers are nil until the user finishes the corresponding
// profile-setup step.
type UserProfile struct {
	UserID          int64
	WeightKg        *int
	HeightCm        *int
	AgeYears        *int
	ActivityMinutes *int
	ActivityType    *string
	City            *string
	WaterGoalMl     int
	CalorieGoal     int
	LoggedWaterMl   int
	LoggedCalories  int
	BurnedCalories  int
}

// Complete reports whether every attribute required by the goal formulas has
// been collected. Several commands refuse to act on an incomplete profile.
func (p *UserProfile) Complete() bool {
	return p.WeightKg != nil &&
		p.HeightCm != nil &&
		p.AgeYears != nil &&
		p.ActivityMinutes != nil &&
		p.City != nil
}

// Clone returns a deep copy of the profile.
func (p *UserProfile) Clone() *UserProfile {
	c := *p
	c.WeightKg = cloneInt(p.WeightKg)
	c.HeightCm = cloneInt(p.HeightCm)
	c.AgeYears = cloneInt(p.AgeYears)
	c.ActivityMinutes = cloneInt(p.ActivityMinutes)
	c.ActivityType = cloneString(p.ActivityType)
	c.City = cloneString(p.City)
	return &c
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneString(v *string) *string {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// Product is a food-lookup result with energy per 100 grams.
type Product struct {
	Name            string
	CaloriesPer100g float64
}
