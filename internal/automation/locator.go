package automation

import "fmt"

// XPath builders for the portal's Angular form controls. Labels may contain
// apostrophes ("Father's Name") so label interpolation uses double quotes;
// radio option texts are short words and use single quotes.

func textContainsXPath(text string) string {
	return fmt.Sprintf(`//*[contains(text(), "%s")]`, text)
}

func buttonXPath(text string) string {
	return fmt.Sprintf(`//button[normalize-space()='%s']`, text)
}

func placeholderInputXPath(placeholder string) string {
	return fmt.Sprintf(`//input[@placeholder='%s']`, placeholder)
}

func radioLabelXPath(optionText string) string {
	return fmt.Sprintf(`//label[normalize-space()='%s']`, optionText)
}

// simpleInputXPath targets a plain input directly after its label.
func simpleInputXPath(labelText string) string {
	return fmt.Sprintf(`//label[contains(., "%s")]/following-sibling::input[1]`, labelText)
}

// dateInputXPath targets the input nested in a material form field, the
// portal's date widget markup.
func dateInputXPath(labelText string) string {
	return fmt.Sprintf(`//label[contains(., "%s")]/following-sibling::mat-form-field[1]//input`, labelText)
}

func dropdownOpenerXPath(labelText string) string {
	return fmt.Sprintf(`//app-dropdown[contains(@label, "%s")]//div[@class='value-area']`, labelText)
}

const dropdownListXPath = `//ul[contains(@class, 'list')]`

const dropdownItemsXPath = `//ul[contains(@class, 'list')]//li`

func dropdownOptionXPath(optionText string) string {
	return fmt.Sprintf(`//ul[contains(@class, 'list')]//li[contains(normalize-space(), "%s")]`, optionText)
}

// dropdownItemAtXPath addresses the nth rendered option, 1-based.
func dropdownItemAtXPath(n int) string {
	return fmt.Sprintf(`(%s)[%d]`, dropdownItemsXPath, n)
}
