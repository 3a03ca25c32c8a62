package catalog

// Locations are the two top-level areas every auditor checks.
var locations = []string{"Exterior", "Interior"}

var locationQuestions = map[string][]string{
	"Exterior": {
		"Is signage in place, in good repair and clearly visible?",
		"Does the landscaping appear to be clean and well maintained?",
		"Do the sidewalks appear to be clean and in good condition?",
		"Does the building appear to be clean and in good condition? (including windows)",
	},
	"Interior": {
		"Are the restrooms clean and stocked? Free of odor? Seats Secure?",
		"Are the floors, tables and seating clean and in good condition?",
		"Are the trash containers clean and in good condition? Liners tucked? No odors?",
		"Are the front corridors clean and clutter free?",
		"Is all lighting working and in good repair?",
		"Is the area clean and well maintained?",
	},
}

// zoneQuestions is keyed by the exact zone name; lookups are case-sensitive.
var zoneQuestions = map[string][]string{
	"Entrance": {
		"Are floors clean, dry and in good condition?",
		"Are entrance doors and latches working properly?",
		"Is the hand washing station operational?",
		"Are aisles free of obstructions?",
		"Is the temperature within the acceptable range?",
		"Are safety signs and instructions clearly visible?",
		"Are entry and exit points well-marked and maintained?",
		"Is there adequate lighting in the entrance area?",
	},
	"Old Lay-up": {
		"Is the holding room temperature maintained between 0-5 degrees Celsius?",
		"Are portioned foods properly stored and labeled?",
		"Is the room free of any signs of pest infestation?",
		"Are hygiene protocols followed during food handling?",
		"Is equipment clean and in good condition?",
		"Are temperature logs regularly maintained and reviewed?",
		"Are emergency exits and equipment accessible and functional?",
		"Is there sufficient space for staff to work safely?",
	},
	"Dry Goods Store": {
		"Are dry goods properly stored in sealed containers?",
		"Is the room well-ventilated to prevent moisture buildup?",
		"Are allergens stored separately and clearly labeled?",
		"Are shelves organized and free of spills?",
		"Are pest control measures in place and effective?",
		"Is there adequate space for maneuvering and storage?",
		"Are spill containment measures in place and functional?",
		"Is there a designated area for receiving and inspecting goods?",
	},
	"Hot kitchen": {
		"Are cooking utensils and equipment clean and sanitized?",
		"Is food cooked to the required temperature?",
		"Are staff following proper food safety protocols?",
		"Are waste bins emptied regularly and kept covered?",
		"Is the kitchen well-ventilated to remove cooking odors?",
		"Are cooking surfaces and equipment free of grease buildup?",
		"Is there sufficient space for staff movement and workflow?",
		"Are emergency shutdown procedures clearly posted and understood?",
	},
	"Dishing Room": {
		"Is food properly cooled before dishing?",
		"Are disposable bowls stored in a clean and dry area?",
		"Is there sufficient space to work safely?",
		"Are staff wearing appropriate personal protective equipment?",
		"Are hygiene standards maintained during food portioning?",
		"Are portioning equipment and utensils clean and sanitized?",
		"Is there adequate lighting for accurate food inspection?",
		"Are food handling procedures clearly documented and followed?",
	},
	"Butchery": {
		"Is meat stored at the correct temperature?",
		"Are cutting boards and knives sanitized between uses?",
		"Is cross-contamination prevented during meat preparation?",
		"Are meat products properly labeled with dates and types?",
		"Are staff trained in safe meat handling practices?",
		"Is there adequate ventilation to remove meat processing odors?",
		"Are meat storage areas organized and free of spills?",
		"Is there a designated area for waste disposal and storage?",
	},
	"Blast Freezers": {
		"Are blast freezers operating at the correct temperature?",
		"Is food properly packaged before entering the blast freezer?",
		"Are blast freezer doors kept closed when not in use?",
		"Is there adequate space for airflow within the freezer?",
		"Are temperature logs maintained and reviewed regularly?",
		"Is there a backup power source in case of power failure?",
		"Are blast freezer surfaces clean and free of ice buildup?",
		"Are emergency alarms and shutdown procedures in place?",
	},
	"Deep Freezer": {
		"Is the deep freezer operating at the correct temperature?",
		"Are frozen foods properly stored and organized?",
		"Are freezer shelves free of frost buildup?",
		"Is there a backup power source in case of a power outage?",
		"Are temperature alarms functioning correctly?",
		"Is there a designated area for inventory management?",
		"Are freezer surfaces clean and free of spills?",
		"Are freezer doors and seals well-maintained and functional?",
	},
	"Cold Room": {
		"Is the cold room temperature within the acceptable range?",
		"Are fruits and vegetables stored separately to prevent cross-contamination?",
		"Are shelves and storage bins clean and free of spills?",
		"Is there adequate lighting in the cold room?",
		"Are temperature logs maintained and reviewed regularly?",
		"Is there a backup cooling system in case of failure?",
		"Are emergency exits and pathways clearly marked and accessible?",
		"Is there sufficient space for staff movement and storage?",
	},
	"Tray Set-up": {
		"Are food trays clean and sanitized before use?",
		"Is food arranged on trays according to standard procedures?",
		"Are tray assembly areas free of spills and debris?",
		"Are trays inspected for quality before distribution?",
		"Are trays stored in a clean and dry environment?",
		"Are tray assembly areas well-ventilated and lit?",
		"Are tray assembly procedures clearly documented and followed?",
		"Are there designated areas for tray assembly and storage?",
	},
	"Bakery": {
		"Are baking ingredients stored in airtight containers?",
		"Is baking equipment clean and in good working condition?",
		"Are baked goods cooled properly before storage?",
		"Are bakery products labeled with expiration dates?",
		"Are hygiene standards maintained during baking operations?",
		"Is there sufficient space for equipment maintenance and storage?",
		"Are bakery waste disposal procedures followed properly?",
		"Is there a backup plan for oven and mixer breakdowns?",
	},
	"Cooked Food Fridge": {
		"Is the fridge temperature maintained between 0-5 degrees Celsius?",
		"Are cooked foods properly covered and labeled?",
		"Is the fridge organized to prevent cross-contamination?",
		"Are temperature logs maintained and reviewed regularly?",
		"Are fridge shelves clean and free of spills?",
		"Is there a backup cooling system in case of failure?",
		"Is there sufficient space for inventory management?",
		"Are emergency shutdown procedures clearly posted and understood?",
	},
	"Receiving Bay": {
		"Are temperature-sensitive products properly stored upon arrival?",
		"Is there a designated area for receiving and inspecting goods?",
		"Are incoming deliveries properly documented and logged?",
		"Are hygiene standards maintained during product handling?",
		"Is there adequate space for unloading and storage?",
		"Are pest control measures in place and effective?",
		"Is there a backup plan for receiving area breakdowns?",
	},
	"Loading Bay": {
		"Is the loading bay area clean and free of spills?",
		"Are outgoing food products properly packaged and labeled?",
		"Is there a designated area for loading food products onto vehicles?",
		"Are loading schedules coordinated to minimize delays?",
		"Are temperature-sensitive products monitored during loading?",
		"Is there adequate space for vehicle maneuvering and parking?",
		"Are safety procedures followed during loading operations?",
		"Is there a backup plan for loading bay breakdowns?",
	},
	"Dish Wash-Up Bay": {
		"Are dishwashing machines properly maintained and sanitized?",
		"Is there a backup plan in case of dishwasher failure?",
		"Are dishwashing areas kept clean and organized?",
		"Is there adequate ventilation to remove steam and heat?",
		"Are dishwashing detergents and sanitizers used correctly?",
		"Are dishes and utensils properly dried after washing?",
		"Is there sufficient space for dish storage and drying racks?",
		"Are dishwashing schedules followed consistently?",
	},
	"Pots and Pans Washing Bay": {
		"Are pots and pans properly cleaned and sanitized?",
		"Are cleaning agents used according to safety guidelines?",
		"Is there adequate ventilation in the washing bay?",
		"Are washed pots and pans properly dried before storage?",
		"Is there a backup plan in case of equipment failure?",
		"Are cleaning schedules followed consistently?",
		"Is there sufficient space for equipment maneuvering?",
		"Are pot and pan storage areas clean and organized?",
	},
	"Old Lay-up Holding Room": {
		"Is the holding room temperature maintained between 0-5 degrees Celsius?",
		"Are portioned foods properly stored and labeled?",
		"Is the room free of any signs of pest infestation?",
		"Are hygiene protocols followed during food handling?",
		"Is equipment clean and in good condition?",
		"Are temperature logs maintained and reviewed regularly?",
		"Are emergency exits and equipment accessible and functional?",
		"Is there sufficient space for staff to work safely?",
	},
}
