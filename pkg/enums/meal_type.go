package enums

// MealType identifies one of the six meal slots a subscription can include.
type MealType string

const (
	MealTypeBreakfast      MealType = "breakfast"
	MealTypeBreakfastSnack MealType = "breakfastSnack"
	MealTypeLunch          MealType = "lunch"
	MealTypeLunchSnack     MealType = "lunchSnack"
	MealTypeDinner         MealType = "dinner"
	MealTypeDinnerSnack    MealType = "dinnerSnack"
)

// MealTypes lists every meal type in menu order.
func MealTypes() []MealType {
	return []MealType{
		MealTypeBreakfast,
		MealTypeBreakfastSnack,
		MealTypeLunch,
		MealTypeLunchSnack,
		MealTypeDinner,
		MealTypeDinnerSnack,
	}
}

func (m MealType) Valid() bool {
	switch m {
	case MealTypeBreakfast, MealTypeBreakfastSnack, MealTypeLunch,
		MealTypeLunchSnack, MealTypeDinner, MealTypeDinnerSnack:
		return true
	default:
		return false
	}
}

var mealTypeLabels = map[MealType]string{
	MealTypeBreakfast:      "มื้อเช้า",
	MealTypeBreakfastSnack: "ของว่างเช้า",
	MealTypeLunch:          "มื้อกลางวัน",
	MealTypeLunchSnack:     "ของว่างกลางวัน",
	MealTypeDinner:         "มื้อเย็น",
	MealTypeDinnerSnack:    "ของว่างเย็น",
}

// Label returns the customer-facing menu label for the meal type.
func (m MealType) Label() string {
	return mealTypeLabels[m]
}
