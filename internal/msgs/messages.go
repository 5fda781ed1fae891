package msgs

const (
	MsgOperationSuccessful = "Operation successful"
	MsgOperationFailed     = "Operation failed"
	MsgYouMustLoginFirst   = "You need to sign in or sign up before continuing"
	MsgSignedIn            = "Signed in successfully"
	MsgSignedOut           = "Signed out successfully"
	MsgSignedUp            = "Welcome! You have signed up successfully"
	MsgGramCreated         = "Gram created"
	MsgGramUpdated         = "Gram updated"
	MsgGramDestroyed       = "Gram destroyed"
	MsgCommentCreated      = "Comment created"
	MsgNotFound            = "Not Found"
	MsgForbidden           = "Forbidden"
)
