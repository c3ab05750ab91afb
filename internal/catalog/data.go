// ABOUTME: Static metric table with display names and canonical units.
// ABOUTME: Also defines the category groups used for selection and listing.
package catalog

var metricTable = []Metric{
	// Body Measurements
	{ID: "bodyMass", Name: "Weight", Unit: "kg"},
	{ID: "bodyMassIndex", Name: "Body Mass Index (BMI)", Unit: "count"},
	{ID: "leanBodyMass", Name: "Lean Body Mass", Unit: "kg"},
	{ID: "height", Name: "Height", Unit: "cm"},
	{ID: "waistCircumference", Name: "Waist Circumference", Unit: "cm"},
	{ID: "bodyFatPercentage", Name: "Body Fat Percentage", Unit: "%"},
	{ID: "electrodermalActivity", Name: "Electrodermal Activity", Unit: "mcS"},

	// Fitness
	{ID: "activeEnergyBurned", Name: "Active Energy Burned", Unit: "kcal"},
	{ID: "appleExerciseTime", Name: "Exercise Time", Unit: "min"},
	{ID: "appleMoveTime", Name: "Move Time", Unit: "min"},
	{ID: "appleStandTime", Name: "Stand Time", Unit: "min"},
	{ID: "basalEnergyBurned", Name: "Basal Energy Burned", Unit: "kcal"},
	{ID: "cyclingCadence", Name: "Cycling Cadence", Unit: "count/min"},
	{ID: "cyclingFunctionalThresholdPower", Name: "Cycling Functional Threshold Power", Unit: "W"},
	{ID: "cyclingPower", Name: "Cycling Power", Unit: "W"},
	{ID: "cyclingSpeed", Name: "Cycling Speed", Unit: "m/s"},
	{ID: "distanceCycling", Name: "Distance Cycling", Unit: "km"},
	{ID: "distanceDownhillSnowSports", Name: "Distance Downhill Snow Sports", Unit: "km"},
	{ID: "distanceSwimming", Name: "Distance Swimming", Unit: "m"},
	{ID: "distanceWalkingRunning", Name: "Distance Walking/Running", Unit: "km"},
	{ID: "distanceWheelchair", Name: "Distance Wheelchair", Unit: "km"},
	{ID: "flightsClimbed", Name: "Flights Climbed", Unit: "count"},
	{ID: "nikeFuel", Name: "Nike Fuel", Unit: "count"},
	{ID: "physicalEffort", Name: "Physical Effort", Unit: "kcal/(kg*hr)"},
	{ID: "pushCount", Name: "Push Count", Unit: "count"},
	{ID: "runningPower", Name: "Running Power", Unit: "W"},
	{ID: "runningSpeed", Name: "Running Speed", Unit: "m/s"},
	{ID: "stepCount", Name: "Step Count", Unit: "count"},
	{ID: "swimmingStrokeCount", Name: "Swimming Stroke Count", Unit: "count"},
	{ID: "underwaterDepth", Name: "Underwater Depth", Unit: "m"},

	// Hearing Health
	{ID: "environmentalAudioExposure", Name: "Environmental Audio Exposure", Unit: "dBASPL"},
	{ID: "environmentalSoundReduction", Name: "Environmental Sound Reduction", Unit: "dBASPL"},
	{ID: "headphoneAudioExposure", Name: "Headphone Audio Exposure", Unit: "dBASPL"},

	// Heart
	{ID: "atrialFibrillationBurden", Name: "Atrial Fibrillation Burden", Unit: "%"},
	{ID: "heartRate", Name: "Heart Rate", Unit: "count/min"},
	{ID: "heartRateRecoveryOneMinute", Name: "Heart Rate Recovery (One Minute)", Unit: "count/min"},
	{ID: "heartRateVariabilitySDNN", Name: "Heart Rate Variability (SDNN)", Unit: "ms"},
	{ID: "peripheralPerfusionIndex", Name: "Peripheral Perfusion Index", Unit: "%"},
	{ID: "restingHeartRate", Name: "Resting Heart Rate", Unit: "count/min"},
	{ID: "vo2Max", Name: "VO2 Max", Unit: "mL/(kg*min)"},
	{ID: "walkingHeartRateAverage", Name: "Walking Heart Rate Average", Unit: "count/min"},

	// Mobility
	{ID: "appleWalkingSteadiness", Name: "Walking Steadiness", Unit: "%"},
	{ID: "runningGroundContactTime", Name: "Running Ground Contact Time", Unit: "ms"},
	{ID: "runningStrideLength", Name: "Running Stride Length", Unit: "m"},
	{ID: "runningVerticalOscillation", Name: "Running Vertical Oscillation", Unit: "cm"},
	{ID: "sixMinuteWalkTestDistance", Name: "Six-Minute Walk Test Distance", Unit: "m"},
	{ID: "stairAscentSpeed", Name: "Stair Ascent Speed", Unit: "m/s"},
	{ID: "stairDescentSpeed", Name: "Stair Descent Speed", Unit: "m/s"},
	{ID: "walkingAsymmetryPercentage", Name: "Walking Asymmetry Percentage", Unit: "%"},
	{ID: "walkingDoubleSupportPercentage", Name: "Walking Double Support Percentage", Unit: "%"},
	{ID: "walkingSpeed", Name: "Walking Speed", Unit: "km/hr"},
	{ID: "walkingStepLength", Name: "Walking Step Length", Unit: "cm"},

	// Nutrition
	{ID: "dietaryBiotin", Name: "Dietary Biotin", Unit: "mcg"},
	{ID: "dietaryCaffeine", Name: "Dietary Caffeine", Unit: "mg"},
	{ID: "dietaryCalcium", Name: "Dietary Calcium", Unit: "mg"},
	{ID: "dietaryCarbohydrates", Name: "Dietary Carbohydrates", Unit: "g"},
	{ID: "dietaryChloride", Name: "Dietary Chloride", Unit: "mg"},
	{ID: "dietaryCholesterol", Name: "Dietary Cholesterol", Unit: "mg"},
	{ID: "dietaryChromium", Name: "Dietary Chromium", Unit: "mcg"},
	{ID: "dietaryCopper", Name: "Dietary Copper", Unit: "mg"},
	{ID: "dietaryEnergyConsumed", Name: "Dietary Energy Consumed", Unit: "kcal"},
	{ID: "dietaryFatMonounsaturated", Name: "Dietary Fat (Monounsaturated)", Unit: "g"},
	{ID: "dietaryFatPolyunsaturated", Name: "Dietary Fat (Polyunsaturated)", Unit: "g"},
	{ID: "dietaryFatSaturated", Name: "Dietary Fat (Saturated)", Unit: "g"},
	{ID: "dietaryFatTotal", Name: "Dietary Fat (Total)", Unit: "g"},
	{ID: "dietaryFiber", Name: "Dietary Fiber", Unit: "g"},
	{ID: "dietaryFolate", Name: "Dietary Folate", Unit: "mcg"},
	{ID: "dietaryIodine", Name: "Dietary Iodine", Unit: "mcg"},
	{ID: "dietaryIron", Name: "Dietary Iron", Unit: "mg"},
	{ID: "dietaryMagnesium", Name: "Dietary Magnesium", Unit: "mg"},
	{ID: "dietaryManganese", Name: "Dietary Manganese", Unit: "mg"},
	{ID: "dietaryMolybdenum", Name: "Dietary Molybdenum", Unit: "mcg"},
	{ID: "dietaryNiacin", Name: "Dietary Niacin", Unit: "mg"},
	{ID: "dietaryPantothenicAcid", Name: "Dietary Pantothenic Acid", Unit: "mg"},
	{ID: "dietaryPhosphorus", Name: "Dietary Phosphorus", Unit: "mg"},
	{ID: "dietaryPotassium", Name: "Dietary Potassium", Unit: "mg"},
	{ID: "dietaryProtein", Name: "Dietary Protein", Unit: "g"},
	{ID: "dietaryRiboflavin", Name: "Dietary Riboflavin", Unit: "mg"},
	{ID: "dietarySelenium", Name: "Dietary Selenium", Unit: "mcg"},
	{ID: "dietarySodium", Name: "Dietary Sodium", Unit: "mg"},
	{ID: "dietarySugar", Name: "Dietary Sugar", Unit: "g"},
	{ID: "dietaryThiamin", Name: "Dietary Thiamin", Unit: "mg"},
	{ID: "dietaryVitaminA", Name: "Dietary Vitamin A", Unit: "mcg"},
	{ID: "dietaryVitaminB12", Name: "Dietary Vitamin B12", Unit: "mcg"},
	{ID: "dietaryVitaminB6", Name: "Dietary Vitamin B6", Unit: "mg"},
	{ID: "dietaryVitaminC", Name: "Dietary Vitamin C", Unit: "mg"},
	{ID: "dietaryVitaminD", Name: "Dietary Vitamin D", Unit: "mcg"},
	{ID: "dietaryVitaminE", Name: "Dietary Vitamin E", Unit: "mg"},
	{ID: "dietaryVitaminK", Name: "Dietary Vitamin K", Unit: "mcg"},
	{ID: "dietaryWater", Name: "Dietary Water", Unit: "mL"},
	{ID: "dietaryZinc", Name: "Dietary Zinc", Unit: "mg"},

	// Other
	{ID: "bloodAlcoholContent", Name: "Blood Alcohol Content", Unit: "%"},
	{ID: "bloodPressureDiastolic", Name: "Blood Pressure (Diastolic)", Unit: "mmHg"},
	{ID: "bloodPressureSystolic", Name: "Blood Pressure (Systolic)", Unit: "mmHg"},
	{ID: "insulinDelivery", Name: "Insulin Delivery", Unit: "IU"},
	{ID: "numberOfAlcoholicBeverages", Name: "Number of Alcoholic Beverages", Unit: "count"},
	{ID: "numberOfTimesFallen", Name: "Number of Times Fallen", Unit: "count"},
	{ID: "timeInDaylight", Name: "Time in Daylight", Unit: "min"},
	{ID: "uvExposure", Name: "UV Exposure", Unit: "count"},
	{ID: "waterTemperature", Name: "Water Temperature", Unit: "degC"},
	{ID: "appleSleepingWristTemperature", Name: "Sleeping Wrist Temperature", Unit: "degC"},
	{ID: "basalBodyTemperature", Name: "Basal Body Temperature", Unit: "degC"},

	// Respiratory
	{ID: "forcedExpiratoryVolume1", Name: "Forced Expiratory Volume (1 second)", Unit: "L"},
	{ID: "forcedVitalCapacity", Name: "Forced Vital Capacity", Unit: "L"},
	{ID: "inhalerUsage", Name: "Inhaler Usage", Unit: "count"},
	{ID: "oxygenSaturation", Name: "Oxygen Saturation", Unit: "%"},
	{ID: "peakExpiratoryFlowRate", Name: "Peak Expiratory Flow Rate", Unit: "L/min"},
	{ID: "respiratoryRate", Name: "Respiratory Rate", Unit: "count/min"},

	// Vital Signs
	{ID: "bloodGlucose", Name: "Blood Glucose", Unit: "mg/dL"},
	{ID: "bodyTemperature", Name: "Body Temperature", Unit: "degC"},
}

// basalBodyTemperature is listed under both Other and Reproductive Health.
var groupTable = []Group{
	{Name: "Body Measurements", Metrics: ids(
		"bodyMass", "bodyMassIndex", "leanBodyMass", "height", "waistCircumference",
		"bodyFatPercentage", "electrodermalActivity",
	)},
	{Name: "Fitness", Metrics: ids(
		"activeEnergyBurned", "appleExerciseTime", "appleMoveTime", "appleStandTime",
		"basalEnergyBurned", "cyclingCadence", "cyclingFunctionalThresholdPower", "cyclingPower",
		"cyclingSpeed", "distanceCycling", "distanceDownhillSnowSports", "distanceSwimming",
		"distanceWalkingRunning", "distanceWheelchair", "flightsClimbed", "physicalEffort",
		"pushCount", "runningPower", "runningSpeed", "stepCount", "swimmingStrokeCount",
		"underwaterDepth",
	)},
	{Name: "Hearing Health", Metrics: ids(
		"environmentalAudioExposure", "environmentalSoundReduction", "headphoneAudioExposure",
	)},
	{Name: "Heart", Metrics: ids(
		"atrialFibrillationBurden", "heartRate", "heartRateRecoveryOneMinute",
		"heartRateVariabilitySDNN", "peripheralPerfusionIndex", "restingHeartRate", "vo2Max",
		"walkingHeartRateAverage",
	)},
	{Name: "Mobility", Metrics: ids(
		"appleWalkingSteadiness", "runningGroundContactTime", "runningStrideLength",
		"runningVerticalOscillation", "sixMinuteWalkTestDistance", "stairAscentSpeed",
		"stairDescentSpeed", "walkingAsymmetryPercentage", "walkingDoubleSupportPercentage",
		"walkingSpeed", "walkingStepLength",
	)},
	{Name: "Nutrition", Metrics: ids(
		"dietaryBiotin", "dietaryCaffeine", "dietaryCalcium", "dietaryCarbohydrates",
		"dietaryChloride", "dietaryCholesterol", "dietaryChromium", "dietaryCopper",
		"dietaryEnergyConsumed", "dietaryFatMonounsaturated", "dietaryFatPolyunsaturated",
		"dietaryFatSaturated", "dietaryFatTotal", "dietaryFiber", "dietaryFolate", "dietaryIodine",
		"dietaryIron", "dietaryMagnesium", "dietaryManganese", "dietaryMolybdenum", "dietaryNiacin",
		"dietaryPantothenicAcid", "dietaryPhosphorus", "dietaryPotassium", "dietaryProtein",
		"dietaryRiboflavin", "dietarySelenium", "dietarySodium", "dietarySugar", "dietaryThiamin",
		"dietaryVitaminA", "dietaryVitaminB12", "dietaryVitaminB6", "dietaryVitaminC",
		"dietaryVitaminD", "dietaryVitaminE", "dietaryVitaminK", "dietaryWater", "dietaryZinc",
	)},
	{Name: "Respiratory", Metrics: ids(
		"forcedExpiratoryVolume1", "forcedVitalCapacity", "inhalerUsage", "oxygenSaturation",
		"peakExpiratoryFlowRate", "respiratoryRate",
	)},
	{Name: "Vital Signs", Metrics: ids(
		"bloodGlucose", "bodyTemperature",
	)},
	{Name: "Other", Metrics: ids(
		"bloodAlcoholContent", "bloodPressureDiastolic", "bloodPressureSystolic", "insulinDelivery",
		"numberOfAlcoholicBeverages", "numberOfTimesFallen", "timeInDaylight", "uvExposure",
		"waterTemperature", "appleSleepingWristTemperature", "basalBodyTemperature",
	)},
	{Name: "Reproductive Health", Metrics: ids(
		"basalBodyTemperature",
	)},
}
