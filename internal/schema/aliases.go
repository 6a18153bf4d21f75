package schema

// Merged-field names used by the merge engine and the automation driver.
const (
	CandidateName        = "candidateName"
	FatherName           = "fatherName"
	MotherName           = "motherName"
	Gender               = "gender"
	DOB                  = "dob"
	AadhaarNumber        = "aadharNumber"
	EducationBoard       = "educationBoard"
	RollNumber           = "rollNumber"
	YearOfPassing        = "yearOfPassing"
	HighestQualification = "highestQualification"
	MobileNumber         = "mobileNumber"
	EmailID              = "emailId"
)

// Aliases maps each merged field to the canonical-record keys that may carry
// its value. Lookup order is fixed: earlier aliases win. The camelCase
// variants survive from older extraction prompts and must keep resolving.
var Aliases = map[string][]string{
	CandidateName:        {"name", "candidate_name", "candidateName", "full_name"},
	FatherName:           {"father_name", "fatherName", "fathersName"},
	MotherName:           {"mother_name", "motherName", "mothersName"},
	Gender:               {"gender"},
	DOB:                  {"dob", "date_of_birth", "dateOfBirth"},
	AadhaarNumber:        {"aadhaar_number", "aadharNumber", "aadhaarNumber"},
	EducationBoard:       {"board_university", "education_board", "educationBoard"},
	RollNumber:           {"roll_number", "rollNumber"},
	YearOfPassing:        {"year_of_passing", "yearOfPassing"},
	HighestQualification: {"highest_qualification", "highestQualification"},
	MobileNumber:         {"mobile_number", "mobileNumber"},
	EmailID:              {"email_address", "emailId", "email"},
}

// Resolve returns the first non-empty value among the merged field's aliases.
// Alias keys outside the canonical set are honored too, because stored
// records from older prompt versions may carry them.
func Resolve(record map[string]*string, mergedField string) string {
	for _, key := range Aliases[mergedField] {
		if val := record[key]; val != nil && *val != "" {
			return *val
		}
	}
	return ""
}
