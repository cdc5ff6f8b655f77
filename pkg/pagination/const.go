package pagination

// PageDefaultSize is the default page size if not specified
const PageDefaultSize = 3

// PageDefault is the page used when none or an invalid one is given
const PageDefault = 1

// PageMaxSize is the largest batch a backend reads at once; full listings such
// as the genre catalog are walked in batches of it
const PageMaxSize = 10_000
