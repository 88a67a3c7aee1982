package daangn

// JSON-LD shapes embedded in the search results page. The site ships
// several ld+json scripts; only the ItemList one carries listings.

type itemList struct {
	Type     string        `json:"@type"`
	Elements []listElement `json:"itemListElement"`
}

type listElement struct {
	Item item `json:"item"`
}

type item struct {
	ID          string `json:"@id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Offers      offers `json:"offers"`
}

// offers.price is sometimes a JSON number and sometimes a string,
// depending on the page variant; decode loosely and normalize later.
type offers struct {
	Price         any    `json:"price"`
	PriceCurrency string `json:"priceCurrency"`
	Seller        seller `json:"seller"`
}

type seller struct {
	Name string `json:"name"`
}
