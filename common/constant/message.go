package constant

const AlertLowStockTemplate = "Внимание! Заканчивается товар:\n\nID: %d\nНазвание: %s / %s\nОстаток: %s шт."

const (
	CommandAllProducts = "/allproducts"
	CommandProduct     = "/product"
	CommandStart       = "/start"
	CommandHelp        = "/help"
)

const (
	ReplyUnknownCommand    = "Неизвестная команда. Доступные команды: /allproducts, /product <id>"
	ReplyHelp              = "Бот уведомлений об остатках.\nДоступные команды: /allproducts, /product <id>"
	ReplyProductsNotFound  = "Продукты не найдены."
	ReplyProductsFailed    = "Не удалось получить список продуктов. Попробуйте позже."
	ReplyProductIdRequired = "Пожалуйста, укажите ID продукта. Пример: /product 1"
	ReplyInvalidIdFormat   = "Неверный формат ID. Пожалуйста, введите число."
	ReplyProductNotFound   = "Продукт с ID %d не найден."
	ReplyProductFailed     = "Не удалось получить информацию о продукте. Попробуйте позже."
)

const (
	ProductListHeader    = "Список всех продуктов:\n"
	ProductListLine      = "ID: %d, Название: %s (%s), Остаток: %s\n"
	ProductProfileHeader = "Информация о продукте ID %d:\n"
	ProductNoneValue     = "нет"
)
