package collections

var collectionRepository = &CollectionRepository{}

var collectionService = &CollectionService{
	collectionRepository,
}

var collectionController = &CollectionController{
	collectionService,
}

func GetCollectionService() *CollectionService {
	return collectionService
}

func GetCollectionController() *CollectionController {
	return collectionController
}
