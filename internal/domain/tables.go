package domain

var Tables = []interface{}{
	&Channel{},
}
