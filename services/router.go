package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

const replyPrefix = "Nessa 🤖: "

// Router turns free-text chat into replies, reading and mutating the
// conversation state the caller passes in. Replies are plain text with
// newlines; the transport decides how to render them.
type Router struct {
	Catalog Catalog
	Log     *logrus.Logger
}

func NewRouter(cat Catalog, log *logrus.Logger) *Router {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Router{Catalog: cat, Log: log}
}

// Reply handles one conversation turn. Internal failures never escape: they
// are logged and turned into an apologetic reply.
func (r *Router) Reply(ctx context.Context, raw string, st *ConversationState) string {
	reply, err := r.dispatch(ctx, ParseIntent(raw), st)
	if err != nil {
		r.Log.WithError(err).WithField("message", raw).Error("router dispatch failed")
		return replyPrefix + "Terjadi kesalahan saat memproses pesan. Coba lagi."
	}
	return reply
}

func (r *Router) dispatch(ctx context.Context, in Intent, st *ConversationState) (string, error) {
	switch in.Kind {
	case IntentBlank:
		return "Nessa: Ketik sesuatu ya 😊", nil
	case IntentGreeting:
		return replyPrefix + "Halo! Aku Nessa — asisten virtual toko. " +
			"Ketik 'bantuan' untuk melihat perintah yang tersedia.", nil
	case IntentHelp:
		return r.helpReply(), nil
	case IntentMenu:
		return r.menuReply(ctx)
	case IntentProductInfo:
		return r.productInfoReply(ctx, in.Query)
	case IntentBrandInfo:
		return brandReply(in.Query), nil
	case IntentRecipe:
		return recipeReply(in.Query), nil
	case IntentNutrition:
		return r.nutritionReply(ctx, in.Age, in.Goal)
	case IntentPlaceOrder:
		return r.placeOrderReply(ctx, st, in.Query, in.Qty)
	case IntentViewCart:
		return r.cartReply(ctx, st)
	case IntentRecycleReport:
		awarded, total := ReportRecycling(st, in.Qty)
		return fmt.Sprintf("%sTerima kasih! Laporan diterima. Anda mendapatkan %d poin. Total poin sekarang: %d.",
			replyPrefix, awarded, total), nil
	case IntentPointsBalance:
		return fmt.Sprintf("%sPoin daur ulang Anda: %d.", replyPrefix, st.EcoPoints), nil
	case IntentRedeemPoints:
		return redeemReply(st.EcoPoints), nil
	case IntentCheckout:
		return replyPrefix + "Untuk checkout, buka halaman keranjang dan isi nama, telepon, " +
			"dan alamat pada formulir checkout.", nil
	default:
		return r.fallbackReply(ctx, in.Raw)
	}
}

func (r *Router) helpReply() string {
	return replyPrefix + "Perintah yang tersedia:\n" +
		"- menu / produk : lihat katalog singkat\n" +
		"- produk <nama> : info produk (contoh: 'produk milo')\n" +
		"- resep <produk> : ide resep sederhana (contoh: 'resep milo')\n" +
		"- rekomendasi gizi usia <usia> <tujuan> : contoh 'rekomendasi gizi usia 30 weight_loss'\n" +
		"- pesan <produk> <qty> : tambah ke keranjang (contoh: 'pesan milo 2')\n" +
		"- keranjang : lihat isi keranjang\n" +
		"- checkout : selesaikan pembelian (akan meminta nama/telepon)\n" +
		"- lapor daur ulang <jumlah> <produk> : dapatkan eco-poin\n" +
		"- poin saya : lihat poin daur ulang\n" +
		"- tukar poin : lihat reward yang bisa ditukar"
}

func (r *Router) menuReply(ctx context.Context) (string, error) {
	products, err := r.Catalog.AllProducts(ctx)
	if err != nil {
		return "", err
	}
	if len(products) > 8 {
		products = products[:8]
	}
	lines := []string{replyPrefix + "Berikut beberapa produk kami:"}
	for _, p := range products {
		lines = append(lines, fmt.Sprintf("- %s (%s) — %s", p.Name, p.Category, FormatMoney(p.Price)))
	}
	lines = append(lines, "Ketik 'produk <nama>' untuk info detil.")
	return strings.Join(lines, "\n"), nil
}

func (r *Router) productInfoReply(ctx context.Context, query string) (string, error) {
	found, err := SearchProducts(ctx, r.Catalog, query, 6, 0.3)
	if err != nil {
		return "", err
	}
	if len(found) == 0 {
		return fmt.Sprintf("%sMaaf, tidak menemukan produk mirip '%s'.", replyPrefix, query), nil
	}
	lines := []string{fmt.Sprintf("%sDitemukan %d produk:", replyPrefix, len(found))}
	for _, p := range found {
		cal := "—"
		if p.Calories != nil {
			cal = fmt.Sprintf("%d kkal", *p.Calories)
		}
		desc := p.Description
		if desc == "" {
			desc = "-"
		}
		lines = append(lines, fmt.Sprintf("- %s — %s — %s — %s", p.Name, desc, FormatMoney(p.Price), cal))
	}
	return strings.Join(lines, "\n"), nil
}

func (r *Router) nutritionReply(ctx context.Context, age *int, goal string) (string, error) {
	advice, recs, err := NutritionAdvice(ctx, r.Catalog, age, goal)
	if err != nil {
		return "", err
	}
	var lines []string
	if advice != "" {
		lines = append(lines, replyPrefix+advice)
	}
	if len(recs) > 0 {
		lines = append(lines, "Produk rekomendasi:")
		for _, p := range recs {
			lines = append(lines, fmt.Sprintf("- %s — %s", p.Name, FormatMoney(p.Price)))
		}
	}
	if len(lines) == 0 {
		return replyPrefix + "Coba format: 'rekomendasi gizi usia 30 weight_loss'", nil
	}
	return strings.Join(lines, "\n"), nil
}

func (r *Router) placeOrderReply(ctx context.Context, st *ConversationState, name string, qty int) (string, error) {
	found, err := SearchProducts(ctx, r.Catalog, name, 1, 0.3)
	if err != nil {
		return "", err
	}
	if len(found) == 0 {
		return fmt.Sprintf("%sProduk '%s' tidak ditemukan.", replyPrefix, name), nil
	}
	p := found[0]
	if err := AddToCart(st, p.ID, qty); err != nil {
		if IsValidation(err) {
			return replyPrefix + "Gagal memproses pesanan. Gunakan format: 'pesan Milo 2'.", nil
		}
		return "", err
	}
	subtotal, _, err := ComputeSubtotal(ctx, r.Catalog, st.Cart)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%d x %s ditambahkan ke keranjang. Subtotal saat ini: %s",
		replyPrefix, qty, p.Name, FormatMoney(subtotal)), nil
}

func (r *Router) cartReply(ctx context.Context, st *ConversationState) (string, error) {
	lines, subtotal, err := CartView(ctx, r.Catalog, st)
	if err != nil {
		return "", err
	}
	if len(lines) == 0 {
		return replyPrefix + "Keranjang Anda kosong 🛒", nil
	}
	out := []string{replyPrefix + "Isi keranjang:"}
	for _, l := range lines {
		out = append(out, fmt.Sprintf("- %s x%d = %s", l.Product.Name, l.Qty, FormatMoney(l.LineTotal)))
	}
	out = append(out, fmt.Sprintf("Total: %s", FormatMoney(subtotal)))
	return strings.Join(out, "\n"), nil
}

func redeemReply(points int) string {
	rewards := EcoRewards(points)
	if len(rewards) == 0 {
		return fmt.Sprintf("%sAnda punya %d poin. Kumpulkan lebih banyak untuk menukar reward (200, 500 poin).",
			replyPrefix, points)
	}
	lines := []string{replyPrefix + "Reward yang bisa ditukar:"}
	for _, rw := range rewards {
		lines = append(lines, "- "+rw)
	}
	return strings.Join(lines, "\n")
}

func (r *Router) fallbackReply(ctx context.Context, raw string) (string, error) {
	found, err := SearchProducts(ctx, r.Catalog, raw, 3, 0.25)
	if err != nil {
		return "", err
	}
	parts := []string{replyPrefix + "Maaf, saya belum paham."}
	if len(found) > 0 {
		names := make([]string, len(found))
		for i, p := range found {
			names[i] = p.Name
		}
		parts = append(parts, "Mungkin kamu mencari produk: "+strings.Join(names, ", ")+".")
	}
	parts = append(parts, "Ketik 'bantuan' untuk contoh perintah.")
	return strings.Join(parts, " "), nil
}

func brandReply(brand string) string {
	switch brand {
	case "nescafe":
		return replyPrefix + "☕ Nescafé — kopi instan dari biji pilihan.\n" +
			"- Classic: rasa kuat & pekat.\n" +
			"- Gold: aroma halus, cita rasa premium.\n" +
			"- Latte: creamy, nikmat dengan susu.\n" +
			"Ketik 'produk Nescafé' atau 'pesan Nescafé 1' untuk menambahkan ke keranjang."
	case "milo":
		return replyPrefix + "Milo Active-Go cocok untuk aktivitas dan pertumbuhan anak; " +
			"mengandung karbohidrat & protein untuk energi."
	case "dancow":
		return replyPrefix + "Dancow Fortigro diformulasikan untuk membantu tumbuh kembang anak " +
			"dengan vitamin & mineral esensial."
	case "cerelac":
		return replyPrefix + "Cerelac membantu pemberian MPASI dengan kandungan zat besi & vitamin."
	case "bearbrand":
		return replyPrefix + "Bear Brand susu steril yang membantu menjaga daya tahan tubuh."
	}
	return replyPrefix + "Maaf, saya belum paham."
}

func recipeReply(query string) string {
	if strings.Contains(query, "milo") {
		return replyPrefix + "Resep sederhana - Milo Oat Bowl:\n" +
			"- 2 sdm Milo + 1/2 cup oat + 200ml susu hangat\n" +
			"- Aduk, tambahkan potongan pisang dan madu jika suka.\n" +
			"Cocok untuk sarapan cepat."
	}
	if strings.Contains(query, "dancow") {
		return replyPrefix + "Resep - Smoothie Dancow:\n" +
			"- 2 sdm Dancow + 1 pisang + 150ml susu + es\n" +
			"- Blender sampai halus, sajikan."
	}
	return replyPrefix + "Maaf, belum ada resep spesifik untuk produk itu. Coba 'resep milo' atau 'resep dancow'."
}
