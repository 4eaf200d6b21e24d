package email

const (
	subjectLeadNotificationFmt = "New configurator lead %s: %s"
	subjectFollowUpFmt         = "Your %s build, saved and ready when you are"
)
