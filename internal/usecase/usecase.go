package usecase

// Сообщения, которые видит пользователь.
const (
	MsgLoadFailed   = "An error occurred while fetching data."
	MsgCreateFailed = "An error occurred while adding the product."
	MsgUpdateFailed = "An error occurred while updating the product."
)
