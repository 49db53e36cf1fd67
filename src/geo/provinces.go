package geo

// builtin lists the 77 provinces in lookup order. The first entry of each row
// is the canonical name; the rest are aliases. Spaceless variants of the
// aliases are added when a table is built.
var builtin = [][]string{
	{"กรุงเทพมหานคร", "กรุงเทพ", "กทม", "bangkok", "krung thep", "bkk"},
	{"กระบี่", "krabi"},
	{"กาญจนบุรี", "kanchanaburi"},
	{"กาฬสินธุ์", "kalasin"},
	{"กำแพงเพชร", "kamphaeng phet"},
	{"ขอนแก่น", "khon kaen"},
	{"จันทบุรี", "chanthaburi", "chantaburi"},
	{"ฉะเชิงเทรา", "chachoengsao"},
	{"ชลบุรี", "chon buri"},
	{"ชัยนาท", "chai nat"},
	{"ชัยภูมิ", "chaiyaphum"},
	{"ชุมพร", "chumphon"},
	{"เชียงราย", "chiang rai"},
	{"เชียงใหม่", "chiang mai"},
	{"ตรัง", "trang"},
	{"ตราด", "trat"},
	{"ตาก", "tak"},
	{"นครนายก", "nakhon nayok"},
	{"นครปฐม", "nakhon pathom"},
	{"นครพนม", "nakhon phanom"},
	{"นครราชสีมา", "nakhon ratchasima", "korat", "โคราช"},
	{"นครศรีธรรมราช", "nakhon si thammarat"},
	{"นครสวรรค์", "nakhon sawan"},
	{"นนทบุรี", "nonthaburi"},
	{"นราธิวาส", "narathiwat"},
	{"น่าน", "nan"},
	{"บึงกาฬ", "bueng kan"},
	{"บุรีรัมย์", "buri ram"},
	{"ปทุมธานี", "pathum thani"},
	{"ประจวบคีรีขันธ์", "prachuap khiri khan"},
	{"ปราจีนบุรี", "prachin buri"},
	{"ปัตตานี", "pattani"},
	{"พระนครศรีอยุธยา", "phra nakhon si ayutthaya", "ayutthaya", "อยุธยา"},
	{"พะเยา", "phayao"},
	{"พังงา", "phang nga"},
	{"พัทลุง", "phatthalung"},
	{"พิจิตร", "phichit"},
	{"พิษณุโลก", "phitsanulok"},
	{"เพชรบุรี", "phetchaburi"},
	{"เพชรบูรณ์", "phetchabun"},
	{"แพร่", "phrae"},
	{"ภูเก็ต", "phuket"},
	{"มหาสารคาม", "maha sarakham"},
	{"มุกดาหาร", "mukdahan"},
	{"แม่ฮ่องสอน", "mae hong son"},
	{"ยโสธร", "yasothon"},
	{"ยะลา", "yala"},
	{"ร้อยเอ็ด", "roi et"},
	{"ระนอง", "ranong"},
	{"ระยอง", "rayong"},
	{"ราชบุรี", "ratchaburi"},
	{"ลพบุรี", "lop buri"},
	{"ลำปาง", "lampang"},
	{"ลำพูน", "lamphun"},
	{"เลย", "loei"},
	{"ศรีสะเกษ", "si sa ket", "sisaket"},
	{"สกลนคร", "sakon nakhon"},
	{"สงขลา", "songkhla", "hat yai"},
	{"สตูล", "satun"},
	{"สมุทรปราการ", "samut prakan"},
	{"สมุทรสงคราม", "samut songkhram"},
	{"สมุทรสาคร", "samut sakhon"},
	{"สระแก้ว", "sa kaeo"},
	{"สระบุรี", "saraburi"},
	{"สิงห์บุรี", "sing buri"},
	{"สุโขทัย", "sukhothai"},
	{"สุพรรณบุรี", "suphan buri"},
	{"สุราษฎร์ธานี", "surat thani"},
	{"สุรินทร์", "surin"},
	{"หนองคาย", "nong khai"},
	{"หนองบัวลำภู", "nong bua lam phu"},
	{"อ่างทอง", "ang thong"},
	{"อำนาจเจริญ", "amnat charoen"},
	{"อุดรธานี", "udon thani"},
	{"อุตรดิตถ์", "uttaradit"},
	{"อุทัยธานี", "uthai thani"},
	{"อุบลราชธานี", "ubon ratchathani"},
}

// Administrative tokens removed from the start of a province string, longest
// first so "เทศบาลนคร" is not reduced to "นคร".
var adminPrefixes = []string{
	"เทศบาลเมือง",
	"เทศบาลนคร",
	"เทศบาล",
	"จังหวัด",
	"อำเภอ",
	"province of",
	"district of",
	"changwat",
	"city of",
	"amphoe",
	"เขต",
	"จ.",
	"อ.",
}

const provinceSuffix = "province"
