package types

// Home tab modes.
type Mode string

const (
	ModeMyTasks     Mode = "my_tasks"
	ModePeople      Mode = "people"
	ModePinned      Mode = "pinned"
	ModePersonTasks Mode = "person_tasks"
)

// Action identifiers carried by buttons and inputs.
const (
	ActionNavMyTasks         = "nav_my_tasks"
	ActionNavPeople          = "nav_people"
	ActionNavPinned          = "nav_pinned"
	ActionOpenAddTask        = "open_add_task"
	ActionOpenUpdateProgress = "open_update_progress"
	ActionCompleteTask       = "complete_task"
	ActionDeleteTask         = "delete_task"
	ActionPinEmployee        = "pin_employee"
	ActionUnpinEmployee      = "unpin_employee"
	ActionPeopleSearch       = "people_search"
	ActionViewUpdates        = "view_updates"
	ActionViewPersonTasks    = "view_person_tasks"
	ActionViewPinnedTasks    = "view_pinned_tasks"
	ActionBackToPersonTasks  = "back_to_person_tasks"
	ActionPersonMenu         = "person_menu"
)

// Modal callback identifiers. Submissions are dispatched on these.
const (
	CallbackAddTask        = "add_task"
	CallbackUpdateProgress = "update_progress"
	CallbackPersonTasks    = "person_tasks"
	CallbackTaskUpdates    = "task_updates"
)

// Block and action ids of form inputs.
const (
	BlockTaskTitle     = "task_title_block"
	InputTaskTitle     = "task_title"
	BlockUpdateContent = "update_content_block"
	InputUpdateContent = "update_content"
	BlockPeopleSearch  = "people_search_block"
)

const ContextRawBodyKey = "slack_raw_body"
