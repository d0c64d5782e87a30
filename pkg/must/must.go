package must

// Must panics if err is not nil. For initialization code where an error is a
// programming mistake, not a runtime condition.
func Must(err error) {
	if err != nil {
		panic(err)
	}
}
