package cli

var Confirm = confirm
