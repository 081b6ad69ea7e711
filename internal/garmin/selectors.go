package garmin

import "github.com/lmehl/trainsync/internal/browser"

// Role names a page element the client interacts with. Keeping the
// role -> locator mapping in one table means a markup change on the
// site is a one-line fix here.
type Role int

const (
	RoleLoginEmail Role = iota
	RoleLoginPassword
	RoleLoginSubmit
	RoleNavActivities
	RoleActivitiesLink
	RoleActivityListItem
	RoleActivityListLink
	RoleActivityListDates
	RoleDetailTitle
	RoleDetailName
	RoleTitleEditTrigger
	RoleTitleInput
	RoleTitleSave
	RoleEditNoteButton
	RoleNoteTextarea
	RoleNoteSave
	RolePreviousButton
)

type Locators map[Role]browser.Locator

func DefaultLocators() Locators {
	return Locators{
		RoleLoginEmail:       browser.ID("email"),
		RoleLoginPassword:    browser.ID("password"),
		RoleLoginSubmit:      browser.CSS("button[data-testid='g__button'][type='submit']"),
		RoleNavActivities:    browser.XPath("//a[@class='main-nav-link' and contains(.//span[@class='nav-text'], 'Activities')]"),
		RoleActivitiesLink:   browser.CSS("a[href='/modern/activities']"),
		RoleActivityListItem: browser.CSS("li.list-item.animated.row-fluid"),
		// querySelector semantics: this resolves to the newest listed activity
		RoleActivityListLink:  browser.CSS("li.list-item.animated.row-fluid a.inline-edit-target"),
		RoleActivityListDates: browser.CSS("li.list-item.animated.row-fluid div.activity-date.date-col"),
		RoleDetailTitle:       browser.CSS("div.pull-left.activity-detail-title"),
		RoleDetailName:        browser.CSS("span.inline-edit-target.page-title-overflow"),
		RoleTitleEditTrigger:  browser.CSS("button.inline-edit-trigger.modal-trigger"),
		RoleTitleInput:        browser.CSS("input.inline-edit-editable"),
		RoleTitleSave:         browser.CSS("button.inline-edit-save.icon-checkmark"),
		RoleEditNoteButton:    browser.CSS("a.edit-note-button.colored"),
		RoleNoteTextarea:      browser.CSS("textarea.noteTextarea"),
		RoleNoteSave:          browser.CSS("button.add-note-button"),
		RolePreviousButton:    browser.CSS("button.page-previous.page-navigation-action"),
	}
}
