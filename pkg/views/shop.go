package views

import (
	"strconv"

	"github.com/electa-dev/electa/pkg/catalog"
	"github.com/electa-dev/electa/pkg/persist"
	. "github.com/electa-dev/electa/pkg/vdom"
)

// Cart texts.
const (
	EmptyCartText  = "Your cart is empty (for now). Items you add will appear here."
	NoProductsText = "The shop is restocking. Check back soon."
)

// ShopGrid renders the product catalogue with add-to-cart buttons.
func ShopGrid(products []catalog.Product) *VNode {
	if len(products) == 0 {
		return Div(ID(TargetShopGrid), Class("shop-grid"), P(Class("empty-state"), NoProductsText))
	}
	return Div(ID(TargetShopGrid), Class("shop-grid"),
		Range(products, func(p catalog.Product, _ int) *VNode {
			return Div(Class("shop-item"),
				Div(Class("shop-item-image"),
					image(p.Image, Alt(p.Title), Class("shop-img"), Data("hide-on-error", "")),
				),
				H3(p.Title),
				P(p.Description),
				Button(
					Class("add-to-cart-btn"),
					Type("button"),
					Action(MarkerAddToCart),
					Data(AttrItemID, p.ID),
					Data(AttrItemPrice, strconv.FormatFloat(p.Price, 'f', -1, 64)),
					"Add to Cart - "+priceLabel(p.Price),
				),
			)
		}),
	)
}

// CartCount sums the quantities of the lines Cart lists.
func CartCount(lines []persist.CartLine, products []catalog.Product) int {
	n := 0
	for _, line := range lines {
		if _, ok := catalog.FindProduct(products, line.ID); ok {
			n += line.Quantity
		}
	}
	return n
}

// CartBadge renders the header item count.
func CartBadge(count int) *VNode {
	return Span(ID(TargetCartCount), Class("cart-count"), strconv.Itoa(count))
}

// Cart renders the cart lines joined with their products, priced from the
// catalogue. Lines whose product is no longer in the catalogue are skipped
// and excluded from the total; a cart with no such line renders empty.
func Cart(lines []persist.CartLine, products []catalog.Product) *VNode {
	var total float64
	items := make([]*VNode, 0, len(lines))
	for _, line := range lines {
		product, ok := catalog.FindProduct(products, line.ID)
		if !ok {
			continue
		}
		line.Price = product.Price
		total += line.Subtotal()
		items = append(items, cartItem(line, product))
	}

	if len(items) == 0 {
		return Div(ID(TargetCart),
			Div(Class("cart-empty"),
				P(EmptyCartText),
				A(Href("/shop"), Class("primary-btn"), "Continue Shopping"),
			),
		)
	}

	return Div(ID(TargetCart),
		Div(Class("cart-items"), items),
		Div(Class("cart-footer"),
			Div(Class("cart-total"), Strong("Total: "+FormatPrice(total))),
			A(Href("#"), Class("primary-btn", "checkout-btn"), "Checkout"),
		),
	)
}

func cartItem(line persist.CartLine, p catalog.Product) *VNode {
	return Div(Class("cart-item"),
		Div(Class("cart-item-image"),
			image(p.Image, Alt(p.Title), Data("hide-on-error", "")),
		),
		Div(Class("cart-item-details"),
			H3(p.Title),
			P(Class("cart-item-description"), p.Description),
			Div(Class("cart-item-meta"),
				Span(Class("cart-item-price"), priceLabel(line.Price)+" × "+strconv.Itoa(line.Quantity)),
				Span(Class("cart-item-total"), FormatPrice(line.Subtotal())),
			),
		),
		Button(
			Class("remove-item-btn"),
			Type("button"),
			Action(MarkerRemoveCartItem),
			Data(AttrItemID, line.ID),
			"Remove",
		),
	)
}

// ShopPage renders the shop.
func ShopPage(products []catalog.Product) *VNode {
	return Section(Class("page-section"),
		H1("Shop"),
		P(Class("section-intro"), "Support Electa with some merch."),
		ShopGrid(products),
	)
}

// CartPage renders the cart.
func CartPage(lines []persist.CartLine, products []catalog.Product) *VNode {
	return Section(Class("page-section"),
		H1("Your Cart"),
		Cart(lines, products),
	)
}
