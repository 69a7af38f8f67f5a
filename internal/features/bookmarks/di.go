package bookmarks

var bookmarkRepository = &BookmarkRepository{}

var bookmarkService = &BookmarkService{
	bookmarkRepository,
}

var bookmarkController = &BookmarkController{
	bookmarkService,
}

func GetBookmarkService() *BookmarkService {
	return bookmarkService
}

func GetBookmarkController() *BookmarkController {
	return bookmarkController
}
