package commands

const (
	msgFailure        = "Something went wrong!"
	msgInvalidRequest = "That request could not be processed."
	msgNotConfigured  = "No content is available right now. Please contact the bot operator."

	msgChannelSet      = "Channel set!"
	msgChannelInvalid  = "Not a valid channel!"
	msgChannelNotFound = "Channel not found on this server!"
	msgChannelUnset    = "Channel not set!"

	msgPingUpdated     = "Ping role updated!"
	msgRoleInvalid     = "Not a valid role!"
	msgPingHelpTitle   = "Parameters"
	msgPingHelpOptions = "<role> - Specific role\n1 - Everyone\n0 - Off (default)"

	msgQuestionInvalidID  = "Not a valid question ID"
	msgQuestionNotFound   = "Question does not exist!"
	msgNoCustomQuestions  = "No custom questions found!"
	msgQuestionRejected   = "Question not accepted"
	msgQuestionCapacity   = "Too many custom questions saved! Please delete some before adding more!"
	msgQuestionDeleted    = "Question deleted!"
	msgQuestionDelMissing = "Question not found!"
	msgEnterValidID       = "Please enter a valid ID!"
	msgSpecifyQuestionID  = "Please specify the ID of question"
	msgQuestionList       = "Here's a list of all saved custom questions"

	msgPollHeader      = "Poll of the day!"
	msgPollInvalidID   = "Not a valid poll ID"
	msgPollNotFound    = "Poll does not exist!"
	msgNoCustomPolls   = "No custom polls saved!\nAdd some with submit_poll!"
	msgNoPollsListed   = "No custom polls found!"
	msgPollCapacity    = "Too many custom polls saved! Please delete some before adding more!"
	msgPollFormat      = "Follow this format when submitting new polls!"
	msgPollTooLong     = "Poll is too long! Questions are limited to 256 characters and options to 255."
	msgPollFormatTitle = "Custom poll format"
	msgPollFormatBody  = "submit_poll Question\nOption1\nOption2"
	msgPollDeleted     = "Poll deleted!"
	msgPollDelMissing  = "Poll not found!"
	msgSpecifyPollID   = "Please specify the ID of poll"
	msgPollList        = "Here's a list of all saved custom polls"
)
